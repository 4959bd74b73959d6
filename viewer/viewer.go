//Package viewer shows a rendered figure in the browser. It serves the image on a local http page
//and blocks until the page's close button is pressed or the context is cancelled
package viewer

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body style="margin:0;background:#fff;text-align:center">
<img src="/figure" alt="{{.Title}}" style="max-width:100%">
<form method="post" action="/close"><button type="submit">Close</button></form>
</body>
</html>
`))

var closedPage = []byte(`<!DOCTYPE html>
<html><head><title>closed</title></head><body>Viewer closed, this tab can be closed as well.</body></html>
`)

//Viewer serves a single figure. A Viewer is meant to be shown once
type Viewer struct {
	addr        string
	title       string
	openBrowser bool
	//launch opens url in a browser
	launch func(url string) error

	mu          sync.RWMutex
	image       []byte
	contentType string

	closed    chan struct{}
	closeOnce sync.Once
}

//New creates a Viewer listening on addr once Show is called. Use port 0 to pick a free port
func New(addr, title string, openBrowser bool) *Viewer {
	return &Viewer{
		addr:        addr,
		title:       title,
		openBrowser: openBrowser,
		launch:      openURL,
		closed:      make(chan struct{}),
	}
}

func (v *Viewer) setFigure(image []byte, contentType string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.image = image
	v.contentType = contentType
}

//Close signals Show to return. Calling it more than once is fine
func (v *Viewer) Close() {
	v.closeOnce.Do(func() {
		close(v.closed)
	})
}

//Closed is closed once the viewer was closed by the user
func (v *Viewer) Closed() <-chan struct{} {
	return v.closed
}

func (v *Viewer) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, struct{ Title string }{v.title}); err != nil {
		log.Warn().Err(err).Msg("failed to render viewer page")
	}
}

func (v *Viewer) handleFigure(w http.ResponseWriter, _ *http.Request) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.image == nil {
		http.Error(w, "no figure available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", v.contentType)
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(v.image); err != nil {
		log.Warn().Err(err).Msg("failed to send figure")
	}
}

func (v *Viewer) handleClose(w http.ResponseWriter, _ *http.Request) {
	v.Close()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(closedPage); err != nil {
		log.Warn().Err(err).Msg("failed to send close confirmation")
	}
}

func (v *Viewer) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	router.Get("/", v.handleIndex)
	router.Get("/figure", v.handleFigure)
	router.Post("/close", v.handleClose)
	return router
}

//Show serves image until the viewer is closed or ctx is done. Both count as a regular close.
//An error is only returned if the server could not be started or crashed
func (v *Viewer) Show(ctx context.Context, image []byte, contentType string) error {
	v.setFigure(image, contentType)

	listener, err := net.Listen("tcp", v.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %v : %w", v.addr, err)
	}
	srv := &http.Server{
		Handler:           v.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	url := fmt.Sprintf("http://%s/", listener.Addr().String())

	workers, workersCtx := errgroup.WithContext(ctx)
	workers.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("viewer server crashed : %w", err)
		}
		return nil
	})
	workers.Go(func() error {
		select {
		case <-v.closed:
			log.Debug().Msg("viewer closed by user")
		case <-workersCtx.Done():
			log.Debug().Msg("viewer interrupted")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful viewer shutdown failed : %w", err)
		}
		return nil
	})

	log.Info().Str("url", url).Msg("serving figure, press close on the page or Ctrl-C to exit")
	if v.openBrowser {
		if err := v.launch(url); err != nil {
			log.Warn().Err(err).Msg("failed to open browser, open the url manually")
		}
	}
	return workers.Wait()
}

//openURL starts the platform's default browser
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

//requestLogger logs served requests using zerolog
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("latency", time.Since(start)).
				Msg("viewer request")
		}()

		next.ServeHTTP(ww, r)
	})
}
