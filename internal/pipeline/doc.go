// Package pipeline runs a chain of codec programs connected by pipes.
//
// A Pipeline is an ordered list of codec stages. The Executor starts one
// OS process per stage, connects each stage's stdout to the next stage's
// stdin with an anonymous pipe, and waits for all of them in order:
//
//	p := pipeline.Must(
//	    codec.Decode(codec.NewFlacDecoder("flac")),
//	    codec.Encode(codec.NewMp3Encoder("lame")),
//	)
//	ok, err := pipeline.NewExecutor(log).Run(p, "song.flac", "song.mp3", meta, settings)
//
// # Success
//
// Run reports success from the final stage's exit status only. A decoder
// that fails part way through while the encoder still exits cleanly is
// logged as a warning and the conversion counts as successful.
//
// # Pipes
//
// The executor closes its own copy of every pipe end as soon as the
// child that uses it has started, so EOF reaches the next stage when the
// writer exits.
package pipeline
