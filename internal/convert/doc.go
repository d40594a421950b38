// Package convert resolves format pairs to codec pipelines and drives
// conversions file by file.
//
// # Resolver
//
// The Resolver holds a fixed table from (input, output) format pairs to
// pipelines of at most two stages. Anything not in the table, including
// identity pairs such as WAVE to WAVE, is rejected with a *FileFormatError:
//
//	r := convert.NewResolver(codec.DefaultTools())
//	p, err := r.Resolve(model.FormatFLAC, model.FormatMP3)
//	// p: flac-decoder(flac) | mp3-encoder(lame)
//
// # Converter
//
// A Converter turns one input path into one output path:
//
//  1. split the extension and look up the input format
//  2. build the destination from Options
//  3. resolve the pipeline
//  4. ask before overwriting an existing destination
//  5. read the source tags and merge Options.Metadata on top
//  6. run the pipeline
//
// ConvertAll processes a batch sequentially and keeps going past failed
// files:
//
//	conv := convert.NewConverter(opts, convert.Deps{Logger: log}, func(e convert.ProgressEvent) {
//		fmt.Println(e.Message)
//	})
//	summary := conv.ConvertAll(ctx, files)
//	if summary.HasFailures() {
//		os.Exit(1)
//	}
package convert
