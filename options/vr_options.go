package options

type VROptions struct {
	Debug     bool
	ParseOnly bool

	// TiledAtlas decodes panoramas into the 256x6144 tiled atlas (four
	// 256 pixel tiles per 512 pixel face) instead of the stacked 256x1536 one.
	TiledAtlas bool

	// StrictSize rejects pictures whose symbol stream does not fill the
	// target surface exactly.
	StrictSize bool
}

func NewVROptions(options *VROptions) *VROptions {

	opt := &VROptions{}
	if options != nil {
		opt.Debug = options.Debug
		opt.ParseOnly = options.ParseOnly
		opt.TiledAtlas = options.TiledAtlas
		opt.StrictSize = options.StrictSize
	}
	return opt
}
