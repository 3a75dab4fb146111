/*
Package maskmap packs up to four grayscale material textures (metallic,
ambient occlusion, detail mask, smoothness) into the channels of a single
RGBA mask map.

	req := maskmap.DefaultRequest()
	req.Channels[maskmap.Metallic].Source = maskmap.NewGraySource(img)
	req.Channels[maskmap.Smoothness].Invert = true // pack roughness

	packed, dropped, err := maskmap.Pack(req)
	if err != nil {
		// handle error
	}
	if len(dropped) != 0 {
		// warn: those slots' sizes differed from the mask map and their
		// default values were packed instead
	}
	out := packed.NRGBA() // encode with image/png, or preview
	_ = out

Sources packed together must share one size; the first assigned slot in
metallic-first order decides it, and slots that disagree fall back to their
default value instead of aborting the pack. With no sources at all the mask
map is 512x512.
*/
package maskmap
