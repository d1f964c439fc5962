// Package app assembles the analysis pipeline from configuration.
package app

import (
	"log/slog"
	"runtime"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/your-org/fitcheck/internal/classify"
	"github.com/your-org/fitcheck/internal/config"
	"github.com/your-org/fitcheck/internal/rating"
	"github.com/your-org/fitcheck/internal/vision"
)

// ClassifierOptions adjusts the chain built by NewClassifier.
type ClassifierOptions struct {
	// SkipFilename drops the always-available filename heuristic, so an
	// upload nobody can classify falls through to the gate's low-confidence rule.
	SkipFilename bool
}

// NewClassifier builds the fallback chain: remote classifier, in-process
// MobileNet, filename heuristic. The returned cleanup releases the ONNX
// session and runtime and is never nil.
func NewClassifier(cfg *config.Config, opts ClassifierOptions) (*classify.Chain, func()) {
	var providers []classify.Provider
	cleanup := func() {}

	if cfg.HuggingFace.Enabled {
		providers = append(providers, classify.NewHuggingFace(cfg.HuggingFace.URL, cfg.HuggingFace.Token, cfg.HuggingFace.Timeout))
	}

	if cfg.LocalModel.Enabled {
		net, release := loadMobileNet(cfg.LocalModel)
		if net != nil {
			providers = append(providers, classify.NewLocal(net))
			cleanup = release
		}
	}

	if !opts.SkipFilename {
		providers = append(providers, classify.Filename{})
	}

	chain := classify.NewChain(providers...)
	slog.Info("classifier chain ready", "providers", chain.Names())
	return chain, cleanup
}

func loadMobileNet(cfg config.LocalModelConfig) (*vision.MobileNet, func()) {
	lib := cfg.ONNXLib
	if lib == "" {
		lib = onnxLibPath()
	}
	ort.SetSharedLibraryPath(lib)
	if err := ort.InitializeEnvironment(); err != nil {
		slog.Warn("onnx runtime init failed, local classifier disabled", "lib", lib, "error", err)
		return nil, nil
	}

	net, err := vision.NewMobileNet(cfg.ModelPath, cfg.LabelsPath)
	if err != nil {
		slog.Warn("mobilenet init failed, local classifier disabled", "model", cfg.ModelPath, "error", err)
		_ = ort.DestroyEnvironment()
		return nil, nil
	}

	slog.Info("local classifier ready", "model", cfg.ModelPath)
	return net, func() {
		net.Close()
		_ = ort.DestroyEnvironment()
	}
}

// onnxLibPath returns the ONNX Runtime shared library name for this platform.
func onnxLibPath() string {
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "darwin":
		return "libonnxruntime.dylib"
	default:
		return "libonnxruntime.so"
	}
}

// NewRater returns the OpenAI rater with demo fallback, or the demo rater
// alone when no API key is configured or demoOnly is set.
func NewRater(cfg config.OpenAIConfig, demoOnly bool) rating.Rater {
	demo := rating.NewDemo(nil)
	if demoOnly || cfg.APIKey == "" {
		slog.Info("openai rating disabled, using demo ratings")
		return demo
	}
	return rating.WithFallback(rating.NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Timeout), demo)
}
