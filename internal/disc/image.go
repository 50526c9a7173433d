package disc

import (
	"errors"
	"os"

	"github.com/gofrs/flock"

	"mkcdda/internal/cdda"
)

// ImageName is the fixed file name of the disc image.
const ImageName = "disc.bin"

// Image is the output disc image file.
type Image struct {
	Path string
	file *os.File
	lock *flock.Flock
}

// CreateImage truncates or creates the image at path. When lock is set, an
// exclusive advisory lock on path+".lock" is held until Close.
func CreateImage(path string, lock bool) (*Image, error) {
	img := &Image{Path: path}
	if lock {
		img.lock = flock.New(path + ".lock")
		ok, err := img.lock.TryLock()
		if err != nil {
			return nil, cdda.Wrap(cdda.OutputWriteFailed, path, err, "acquire image lock")
		}
		if !ok {
			return nil, cdda.Errorf(cdda.OutputWriteFailed, path, "another mkcdda run is writing this image")
		}
	}

	file, err := os.Create(path)
	if err != nil {
		img.unlock()
		return nil, cdda.Wrap(cdda.OutputWriteFailed, path, err, "create image")
	}
	img.file = file
	return img, nil
}

// Write implements io.Writer.
func (i *Image) Write(p []byte) (int, error) {
	return i.file.Write(p)
}

// Close flushes and closes the image and releases its lock.
func (i *Image) Close() error {
	var errs []error
	if i.file != nil {
		if err := i.file.Sync(); err != nil {
			errs = append(errs, err)
		}
		if err := i.file.Close(); err != nil {
			errs = append(errs, err)
		}
		i.file = nil
	}
	i.unlock()
	if err := errors.Join(errs...); err != nil {
		return cdda.Wrap(cdda.OutputWriteFailed, i.Path, err, "close image")
	}
	return nil
}

func (i *Image) unlock() {
	if i.lock == nil {
		return
	}
	_ = i.lock.Unlock()
	_ = os.Remove(i.lock.Path())
	i.lock = nil
}
