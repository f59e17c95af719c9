package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/components/contactform"
	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/config"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

// Render command flags
var (
	outputPath   string
	renderValues map[string]string
	submitValues bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the contact form as HTML",
	Long: `Render the contact form as a standalone HTML document.

Values given with --value prefill the form. With --submit the values are
submitted first, so the output shows either the error annotations or the
submitted summary.`,
	Example: `  # Empty form on stdout
  contactform render

  # Prefilled and submitted, written to a file
  contactform render --value firstName=Fiveo --value email=a@b.com --submit --output form.html`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (stdout if empty)")
	renderCmd.Flags().StringToStringVar(&renderValues, "value", nil, "Field value as name=value (repeatable)")
	renderCmd.Flags().BoolVar(&submitValues, "submit", false, "Submit the values before rendering")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	doc, err := cfg.Document()
	if err != nil {
		return err
	}

	values := model.ValuesFromMap(renderValues)
	for name := range renderValues {
		if _, ok := values.Get(name); !ok {
			return fmt.Errorf("unknown field %q", name)
		}
	}

	orch := orchestrator.New(cfg.OrchestratorOptions(logger)...)
	ctx := cmd.Context()
	req := orchestrator.Request{
		Document:      doc,
		Renderer:      vanilla.Name,
		Values:        values,
		RenderOptions: cfg.RenderOptions(),
	}

	state, err := orch.NewState(ctx, req)
	if err != nil {
		return err
	}
	if submitValues {
		result := state.Submit()
		logger.Debug("render submitted values", zap.Bool("ok", result.OK))
	}
	req.State = state

	output, err := orch.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("generate form: %w", err)
	}

	if outputPath == "" {
		_, err = cmd.OutOrStdout().Write(output)
		return err
	}
	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", outputPath)
	return nil
}

// Serve command flags
var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the contact form over HTTP",
	Long: `Serve the contact form over HTTP.

GET renders the form, POST validates a submission and renders the result,
and the live endpoint validates keystrokes over a websocket.`,
	Example: `  # Serve on the configured address
  contactform serve --config contactform.yaml

  # Override the listen address
  contactform serve --addr 127.0.0.1:9000 --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	handler, paths, err := newServeMux(cfg, logger)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("contact form listening",
			zap.String("addr", addr),
			zap.String("form", paths.Form),
			zap.String("live", paths.Live),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServeMux wires the component onto a fresh mux. The vanilla renderer is
// rebuilt so pages load the live runtime script from the mounted asset path.
func newServeMux(cfg *config.Config, logger *zap.Logger) (http.Handler, contactform.Paths, error) {
	doc, err := cfg.Document()
	if err != nil {
		return nil, contactform.Paths{}, err
	}

	fns := []contactform.OptionFn{
		contactform.WithLive(cfg.Server.Live),
		contactform.WithRenderOptions(cfg.RenderOptions()),
		contactform.WithDocument(doc),
		contactform.WithLogger(logger),
	}

	var vanillaOpts []vanilla.Option
	if cfg.Server.Live {
		vanillaOpts = append(vanillaOpts, vanilla.WithRuntimeScriptURL(contactform.RuntimeScriptURL(cfg.Server.BasePath, fns...)))
	}
	renderer, err := vanilla.New(vanillaOpts...)
	if err != nil {
		return nil, contactform.Paths{}, fmt.Errorf("vanilla renderer: %w", err)
	}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		return nil, contactform.Paths{}, err
	}

	options := append(cfg.OrchestratorOptions(logger), orchestrator.WithRegistry(registry))
	fns = append(fns, contactform.WithOrchestrator(orchestrator.New(options...)))
	if field := cfg.Server.CSRFField; field != "" {
		token := uuid.NewString()
		fns = append(fns,
			contactform.WithCSRF(func(*http.Request) (string, string) {
				return field, token
			}),
			contactform.WithGuard(csrfGuard(field, token)),
		)
	}

	mux := http.NewServeMux()
	paths, err := contactform.RegisterRoutes(mux, cfg.Server.BasePath, fns...)
	if err != nil {
		return nil, contactform.Paths{}, err
	}
	return mux, paths, nil
}

// csrfGuard rejects POSTs that do not echo the token issued for this process.
func csrfGuard(field, token string) contactform.GuardFunc {
	return func(r *http.Request) error {
		if r.Method != http.MethodPost {
			return nil
		}
		if r.PostFormValue(field) != token {
			return contactform.StatusError{Code: http.StatusForbidden, Err: errors.New("csrf token mismatch")}
		}
		return nil
	}
}

// Prompt command flags
var (
	promptFormat  string
	promptConfirm bool
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill in the contact form from the terminal",
	Long: `Prompt for every field in order, re-asking until the value passes
validation, and print the submitted values.`,
	Example: `  # JSON output
  contactform prompt

  # Human readable summary with a confirmation step
  contactform prompt --format pretty --confirm`,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVar(&promptFormat, "format", "json", "Output format (json, form, pretty)")
	promptCmd.Flags().BoolVar(&promptConfirm, "confirm", false, "Ask for confirmation before submitting")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logging.Sync()

	format, ok := tui.ParseOutputFormat(promptFormat)
	if !ok {
		return fmt.Errorf("unknown output format %q", promptFormat)
	}
	tuiOpts := []tui.Option{
		tui.WithOutputFormat(format),
		tui.WithValidator(cfg.Validator()),
	}
	if promptConfirm {
		tuiOpts = append(tuiOpts, tui.WithConfirmSubmit())
	}
	renderer, err := tui.New(tuiOpts...)
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		return err
	}

	doc, err := cfg.Document()
	if err != nil {
		return err
	}
	orch := orchestrator.New(append(cfg.OrchestratorOptions(logger),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(tui.Name),
	)...)

	output, err := orch.Generate(cmd.Context(), orchestrator.Request{
		Document:      doc,
		Renderer:      tui.Name,
		RenderOptions: cfg.RenderOptions(),
	})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, tui.ErrDeclined) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled.")
			return nil
		}
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return err
}
