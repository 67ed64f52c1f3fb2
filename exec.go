package pivot

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/pivot/utils"
	"golang.org/x/term"
)

// ErrInvalidDestination is returned when a directory is rendered into a pipe or a file.
var ErrInvalidDestination = errors.New("a directory source requires a destination directory")

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops describes the source and destination of a render operation.
// Src can be an image file, a directory, an URL or the pipe name.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about the rendering process of a single image.
type result struct {
	path string
	err  error
}

// Execute executes the render process. A directory is processed recursively
// by a pool of workers, each image being rendered into the destination directory.
func (p *Processor) Execute(op *Ops) error {
	var (
		fs  os.FileInfo
		err error
	)
	src := op.Src

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		f.Close()
		defer os.Remove(f.Name())

		src = f.Name()
	}

	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if op.Dst == "" || op.Dst == op.PipeName || isValidExtension(filepath.Ext(op.Dst)) {
			return fmt.Errorf("%w: %q", ErrInvalidDestination, op.Dst)
		}
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}
		err = op.executeDir(p, src)

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		ext := filepath.Ext(op.Dst)
		if !isValidExtension(ext) && op.Dst != op.PipeName {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}

		p.startSpinner()
		err = op.process(p, src, op.Dst)
		p.stopSpinner(err)
		op.printOpStatus(op.Dst, err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// executeDir renders the images found in the src directory concurrently.
// The first error is returned once every image has been processed.
func (op *Ops) executeDir(p *Processor, src string) error {
	var (
		wg       sync.WaitGroup
		firstErr error
		count    int
	)

	// Limit the concurrently running workers to maxWorkers.
	if op.Workers <= 0 || op.Workers > maxWorkers {
		op.Workers = runtime.NumCPU()
	}

	ch := make(chan result)
	done := make(chan any)
	defer close(done)

	paths, errc := walkDir(done, src, SupportedExtensions)

	p.startSpinner()
	wg.Add(op.Workers)
	for i := 0; i < op.Workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, src, op.Dst, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	// Consume the channel values.
	for res := range ch {
		count++
		if res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", res.path, res.err)
		}
		if p.Spinner != nil {
			p.Spinner.SetMessage(spinnerMsg(fmt.Sprintf("⇢ %d image(s) rendered...", count)))
		}
	}
	if err := <-errc; err != nil && firstErr == nil {
		firstErr = err
	}
	p.stopSpinner(firstErr)

	if firstErr == nil {
		fmt.Fprintf(os.Stderr, "\n%d image(s) saved into: %s\n",
			count, utils.DecorateText(op.Dst, utils.SuccessMessage))
	}
	return firstErr
}

// consumer reads the path names from the paths channel and renders each source image.
// The directory structure of the source tree is kept under the destination directory.
func (op *Ops) consumer(
	p *Processor,
	root, dest string,
	res chan<- result,
	done <-chan any,
	paths <-chan string,
) {
	for src := range paths {
		dst, err := destPath(root, dest, src)
		if err == nil {
			err = op.process(p, src, dst)
		}

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process renders the in image into the out file and returns the error in case exists.
func (op *Ops) process(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer func() {
		if img, ok := src.(*os.File); ok && img != os.Stdin {
			if err := img.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalChan)
		close(signalChan)
	}()
	go func() {
		if _, ok := <-signalChan; !ok {
			return
		}
		if p.Spinner != nil {
			p.Spinner.RestoreCursor()
		}
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			os.Remove(f.Name())
		}
		os.Exit(1)
	}()

	err = p.Process(src, dst)

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		// remove the generated image file in case of an error
		if err != nil {
			os.Remove(f.Name())
		}
	}
	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the rendering process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		log.Printf("%s%s",
			utils.DecorateText("\nError rendering the image: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan any,
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if utils.Contains(srcExts, strings.ToLower(filepath.Ext(f.Name()))) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// destPath maps the src image found under the root directory to its
// location inside the dest directory, creating the intermediate directories.
func destPath(root, dest, src string) (string, error) {
	rel, err := filepath.Rel(root, src)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dest, outputName(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("unable to create the destination directory: %w", err)
	}
	return dst, nil
}

// outputName returns the destination name of a source image. Sources
// without an encoder (e.g. gif) are rendered as png.
func outputName(src string) string {
	if ext := filepath.Ext(src); !isValidExtension(ext) {
		return strings.TrimSuffix(src, ext) + ".png"
	}
	return src
}

func spinnerMsg(msg string) string {
	return fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ PIVOT", utils.StatusMessage),
		utils.DecorateText(msg, utils.DefaultMessage),
	)
}

func (p *Processor) startSpinner() {
	if p.Spinner == nil {
		return
	}
	p.Spinner.SetMessage(spinnerMsg("⇢ rendering the viewport..."))
	p.Spinner.Start()
}

func (p *Processor) stopSpinner(err error) {
	if p.Spinner == nil {
		return
	}
	if err != nil {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s\n",
			spinnerMsg("rendering failed..."),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	} else {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s\n",
			spinnerMsg("⇢"),
			utils.DecorateText("the viewport has been rendered successfully ✔", utils.SuccessMessage),
		)
	}
	p.Spinner.Stop()
}
