package convert

import (
	"sort"

	"github.com/handiism/audioconv/internal/codec"
	"github.com/handiism/audioconv/internal/model"
	"github.com/handiism/audioconv/internal/pipeline"
)

// Pair is an (input, output) format combination.
type Pair struct {
	From model.Format
	To   model.Format
}

func (p Pair) String() string {
	return p.From.String() + " -> " + p.To.String()
}

// Resolver maps a format pair to the pipeline that performs it. The table
// is fixed when the Resolver is built; there is no transitive search, so a
// pair is supported only if it is listed.
type Resolver struct {
	table map[Pair]pipeline.Pipeline
}

// NewResolver builds the conversion table for the given programs.
//
//	WAVE -> FLAC, OGG, MP3    encode
//	FLAC -> OGG               oggenc reads FLAC directly
//	FLAC -> MP3               flac -d | lame
//	MP3  -> WAVE              lame --decode
//	MP3  -> MP3               lame (re-encode)
//	MP3  -> FLAC, OGG         lame --decode | encoder
//	OGG  -> WAVE              oggdec
//	OGG  -> FLAC, MP3         oggdec | encoder
//	APE  -> WAVE              mac -d
//	APE  -> FLAC, OGG, MP3    mac -d | encoder
//	WMA  -> WAVE              ffmpeg
//	WMA  -> FLAC, OGG, MP3    ffmpeg | encoder
func NewResolver(tools codec.Tools) *Resolver {
	tools = tools.WithDefaults()

	flacEnc := codec.Encode(codec.NewFlacEncoder(tools.Flac))
	oggEnc := codec.Encode(codec.NewOggEncoder(tools.OggEnc))
	mp3Enc := codec.Encode(codec.NewMp3Encoder(tools.Lame))

	flacDec := codec.Decode(codec.NewFlacDecoder(tools.Flac))
	oggDec := codec.Decode(codec.NewOggDecoder(tools.OggDec))
	mp3Dec := codec.Decode(codec.NewMp3Decoder(tools.Lame))
	apeDec := codec.Decode(codec.NewApeDecoder(tools.Mac))
	wmaDec := codec.Decode(codec.NewFFmpegDecoder(tools.FFmpeg))

	encoders := map[model.Format]codec.Stage{
		model.FormatFLAC: flacEnc,
		model.FormatOGG:  oggEnc,
		model.FormatMP3:  mp3Enc,
	}

	table := map[Pair][]codec.Stage{
		{model.FormatFLAC, model.FormatOGG}: {oggEnc},
		{model.FormatFLAC, model.FormatMP3}: {flacDec, mp3Enc},
		{model.FormatMP3, model.FormatWAVE}: {mp3Dec},
		{model.FormatMP3, model.FormatMP3}:  {mp3Enc},
		{model.FormatMP3, model.FormatFLAC}: {mp3Dec, flacEnc},
		{model.FormatMP3, model.FormatOGG}:  {mp3Dec, oggEnc},
		{model.FormatOGG, model.FormatWAVE}: {oggDec},
		{model.FormatOGG, model.FormatFLAC}: {oggDec, flacEnc},
		{model.FormatOGG, model.FormatMP3}:  {oggDec, mp3Enc},
		{model.FormatAPE, model.FormatWAVE}: {apeDec},
		{model.FormatWMA, model.FormatWAVE}: {wmaDec},
	}
	for to, enc := range encoders {
		table[Pair{model.FormatWAVE, to}] = []codec.Stage{enc}
		table[Pair{model.FormatAPE, to}] = []codec.Stage{apeDec, enc}
		table[Pair{model.FormatWMA, to}] = []codec.Stage{wmaDec, enc}
	}

	return newResolver(table)
}

func newResolver(table map[Pair][]codec.Stage) *Resolver {
	r := &Resolver{table: make(map[Pair]pipeline.Pipeline, len(table))}
	for pair, stages := range table {
		r.table[pair] = pipeline.Must(stages...)
	}
	return r
}

// Resolve returns the pipeline converting in to out, or a
// *FileFormatError naming both formats.
func (r *Resolver) Resolve(in, out model.Format) (pipeline.Pipeline, error) {
	p, ok := r.table[Pair{in, out}]
	if !ok {
		return pipeline.Pipeline{}, &FileFormatError{Input: in, Output: out}
	}
	return p, nil
}

// OutputFormats lists the formats at least one pair produces, in
// model.Formats order.
func (r *Resolver) OutputFormats() []model.Format {
	var formats []model.Format
	for _, f := range model.Formats() {
		for p := range r.table {
			if p.To == f {
				formats = append(formats, f)
				break
			}
		}
	}
	return formats
}

// Pairs lists the supported pairs ordered by input, then output format.
func (r *Resolver) Pairs() []Pair {
	pairs := make([]Pair, 0, len(r.table))
	for p := range r.table {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].From != pairs[j].From {
			return pairs[i].From < pairs[j].From
		}
		return pairs[i].To < pairs[j].To
	})
	return pairs
}
