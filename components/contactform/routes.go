package contactform

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Paths holds the mounted routes of the component.
type Paths struct {
	Form   string
	Live   string
	Assets string
}

// MountPath returns the full mount path for the form route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// MountPaths returns every route the component registers under basePath.
func MountPaths(basePath string, fns ...OptionFn) Paths {
	return mountPaths(basePath, NewOptions(fns...))
}

// RuntimeScriptURL is the URL the live runtime script is served from. Pass it
// to vanilla.WithRuntimeScriptURL so rendered pages load it.
func RuntimeScriptURL(basePath string, fns ...OptionFn) string {
	return mountPaths(basePath, NewOptions(fns...)).Assets + vanilla.RuntimeScriptName
}

// RegisterRoutes registers the form, live and asset handlers under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Paths, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the handlers using a pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Paths, error) {
	if mux == nil {
		return Paths{}, fmt.Errorf("contactform: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	paths := mountPaths(basePath, opts)

	mux.Handle(paths.Form, newFormHandler(opts, paths))
	if opts.Live {
		mux.Handle(paths.Live, LiveHandlerWithOptions(opts))
	}
	mux.Handle(paths.Assets, http.StripPrefix(paths.Assets, http.FileServerFS(vanilla.AssetsFS())))
	return paths, nil
}

func mountPaths(basePath string, opts Options) Paths {
	paths := Paths{
		Form:   mountPath(basePath, opts.RoutePath),
		Live:   mountPath(basePath, opts.LivePath),
		Assets: mountPath(basePath, opts.AssetsPath),
	}
	if !strings.HasSuffix(paths.Assets, "/") {
		paths.Assets += "/"
	}
	if !opts.Live {
		paths.Live = ""
	}
	return paths
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
