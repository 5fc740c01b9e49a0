package stride

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/capitan"
)

// FileProvider tails a newline-delimited fix log. Each line holds one fix
// or a list of fixes encoded with the configured codec (JSON by default).
// Lines already present when the subscription starts are delivered first.
type FileProvider struct {
	path  string
	codec Codec
}

// NewFileProvider creates a new FileProvider for the given file path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path, codec: JSONCodec{}}
}

// Codec sets the codec used to decode each line.
func (p *FileProvider) Codec(codec Codec) *FileProvider {
	p.codec = codec
	return p
}

// Subscribe begins watching the file and returns a channel that emits the
// fixes found in newly appended lines. A trailing line without a newline
// is held back until it is completed. If the file shrinks it is read
// again from the start. The request is ignored.
func (p *FileProvider) Subscribe(ctx context.Context, _ Request) (<-chan Batch, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(p.path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch file %s: %w", p.path, err)
	}

	out := make(chan Batch)

	go func() {
		defer close(out)
		defer watcher.Close()

		tail := &fileTail{path: p.path, codec: p.codec}
		send := func() bool {
			batch := tail.next(ctx)
			if len(batch) == 0 {
				return true
			}
			select {
			case out <- batch:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// Emit existing contents
		if !send() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Only read on write or create events
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !send() {
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
			}
		}
	}()

	return out, nil
}

// fileTail reads complete lines appended since the previous call.
type fileTail struct {
	path    string
	codec   Codec
	offset  int64
	partial []byte
}

func (f *fileTail) next(ctx context.Context) Batch {
	file, err := os.Open(f.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil
	}
	if info.Size() < f.offset {
		f.offset = 0
		f.partial = nil
	}
	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil
	}
	f.offset += int64(len(data))

	data = append(f.partial, data...)
	cut := bytes.LastIndexByte(data, '\n')
	if cut < 0 {
		f.partial = data
		return nil
	}
	f.partial = append([]byte(nil), data[cut+1:]...)

	var batch Batch
	for _, line := range bytes.Split(data[:cut], []byte{'\n'}) {
		fixes, err := DecodeBatch(f.codec, line)
		if err != nil {
			capitan.Emit(ctx, ProviderDecodeFailed,
				KeyProviderType.Field("file"),
				KeyError.Field(err.Error()),
			)
			continue
		}
		batch = append(batch, fixes...)
	}
	return batch
}

// Ensure FileProvider implements Provider.
var _ Provider = (*FileProvider)(nil)
