package transport

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/wire"
	"go.uber.org/zap"
)

const maxLineBytes = 1 << 20

// ErrLineTooLong is reported for request lines longer than maxLineBytes.
var ErrLineTooLong = fmt.Errorf("request line exceeds %d bytes", maxLineBytes)

// LineServer reads one JSON request per line and writes one JSON response per line.
type LineServer struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewLineServer returns a LineServer backed by dispatcher.
func NewLineServer(dispatcher *Dispatcher, logger *zap.Logger) *LineServer {
	return &LineServer{dispatcher: dispatcher, logger: logger}
}

// Serve processes requests from in until EOF or until ctx is done.
// Blank lines are skipped; a line that does not decode or is too long gets
// an error response and the loop continues with the next line.
func (s *LineServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	r := bufio.NewReaderSize(in, 64*1024)
	w := bufio.NewWriter(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, tooLong, readErr := readLine(r, maxLineBytes)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("read requests: %w", readErr)
		}

		switch {
		case tooLong:
			s.logger.Warn("request line too long", zap.Int("limit", maxLineBytes))
			if err := writeLine(w, wire.Response{Error: ErrLineTooLong.Error()}); err != nil {
				return err
			}
		case len(line) > 0:
			if err := writeLine(w, s.handle(ctx, line)); err != nil {
				return err
			}
		}

		if readErr != nil {
			return ctx.Err()
		}
	}
}

func (s *LineServer) handle(ctx context.Context, line []byte) wire.Response {
	req, err := wire.DecodeRequest(line)
	if err != nil {
		s.logger.Warn("malformed request line", zap.Error(err))
		return wire.Response{Error: err.Error()}
	}
	return s.dispatcher.Dispatch(ctx, req)
}

// readLine returns the next line with surrounding whitespace trimmed. A line
// longer than limit is consumed up to its newline and reported as tooLong
// without being buffered. err is io.EOF once the input is exhausted.
func readLine(r *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, readErr := r.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(bytes.TrimRight(line, "\r\n")) > limit {
				tooLong = true
				line = nil
			}
		}
		if errors.Is(readErr, bufio.ErrBufferFull) {
			continue
		}
		if tooLong {
			return nil, true, readErr
		}
		return bytes.TrimSpace(line), false, readErr
	}
}

func writeLine(w *bufio.Writer, resp wire.Response) error {
	data, err := wire.EncodeResponse(resp)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return w.Flush()
}
