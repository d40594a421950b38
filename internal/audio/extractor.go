package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/handiism/audioconv/internal/codec"
	"github.com/handiism/audioconv/internal/model"
	"go.uber.org/zap"
)

// Extractor reads the tags embedded in a source file.
type Extractor interface {
	Extract(ctx context.Context, format model.Format, path string) (*model.Metadata, error)
}

// ToolExtractor reads tags with the format's own tooling:
//   - FLAC: metaflac --export-tags-to=- <file>
//   - Ogg Vorbis: vorbiscomment -l <file>
//   - MP3: ID3v2 frames, read in-process
//
// Other formats have no readable tags and yield empty Metadata.
type ToolExtractor struct {
	tools codec.Tools
	log   *zap.Logger
}

// NewExtractor creates a ToolExtractor. A nil logger discards warnings.
func NewExtractor(tools codec.Tools, log *zap.Logger) *ToolExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &ToolExtractor{tools: tools.WithDefaults(), log: log}
}

// Extract returns the tags of path. On error the returned Metadata is
// empty but non-nil, so callers may log and carry on.
func (x *ToolExtractor) Extract(ctx context.Context, format model.Format, path string) (*model.Metadata, error) {
	switch format {
	case model.FormatFLAC:
		return x.runTool(ctx, x.tools.MetaFlac, "--export-tags-to=-", path)
	case model.FormatOGG:
		return x.runTool(ctx, x.tools.VorbisComment, "-l", path)
	case model.FormatMP3:
		meta, err := ReadID3(path)
		if err != nil {
			return model.NewMetadata(), fmt.Errorf("read id3 tag of %s: %w", path, err)
		}
		return meta, nil
	default:
		return model.NewMetadata(), nil
	}
}

func (x *ToolExtractor) runTool(ctx context.Context, program string, args ...string) (*model.Metadata, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	x.log.Debug("extracting metadata", zap.String("command", codec.CommandLine(program, args)))

	if err := cmd.Run(); err != nil {
		return model.NewMetadata(), fmt.Errorf("%s failed: %w: %s", program, err, strings.TrimSpace(stderr.String()))
	}

	meta, warnings := ParseVorbisComment(&stdout)
	for _, w := range warnings {
		x.log.Warn("skipping metadata line", zap.String("program", program), zap.Error(w))
	}
	return meta, nil
}
