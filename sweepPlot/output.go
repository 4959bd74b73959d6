package sweepPlot

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

//Encoder is a rendered figure that can be written out
type Encoder interface {
	Save(path string) error
	Encode(out io.Writer, format string) error
}

//Shower presents an encoded figure and blocks until it is closed
type Shower interface {
	Show(ctx context.Context, image []byte, contentType string) error
}

//Output saves fig to opts.Output. Without an output path the figure is encoded as viewerFormat and
//handed to shower, which blocks until the user closes it
func Output(ctx context.Context, opts Options, fig Encoder, shower Shower, viewerFormat string) error {
	if opts.Output != "" {
		if err := fig.Save(opts.Output); err != nil {
			return err
		}
		log.Info().Str("path", opts.Output).Msg("saved figure")
		return nil
	}

	contentType, err := ContentType(viewerFormat)
	if err != nil {
		return fmt.Errorf("invalid viewer format : %w", err)
	}
	buf := &bytes.Buffer{}
	if err := fig.Encode(buf, viewerFormat); err != nil {
		return err
	}
	if err := shower.Show(ctx, buf.Bytes(), contentType); err != nil {
		return fmt.Errorf("viewer failed : %w", err)
	}
	return nil
}
