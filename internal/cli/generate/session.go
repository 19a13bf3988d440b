package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/KartikLabhshetwar/briefli/internal/core/fsys"
	"github.com/KartikLabhshetwar/briefli/internal/core/llm"
	"github.com/KartikLabhshetwar/briefli/internal/core/metadata"
	"github.com/KartikLabhshetwar/briefli/internal/core/prompt"
	"github.com/KartikLabhshetwar/briefli/internal/core/readme"
	"github.com/KartikLabhshetwar/briefli/internal/core/validator"
	"github.com/KartikLabhshetwar/briefli/internal/log"
	"github.com/KartikLabhshetwar/briefli/internal/ui"
)

// ReadmeName is the artifact written to the project root.
const ReadmeName = "README.md"

const otherLicense = "__other__"

// State is a step of the interactive session.
type State int

const (
	StateCheckExisting State = iota
	StateAcquireKey
	StateCollectInput
	StateAnalyze
	StateGenerateInitial
	StatePreviewLoop
	StatePersist
	StateDone
	StateAborted
)

var stateNames = [...]string{
	"CheckExisting", "AcquireKey", "CollectInput", "Analyze", "GenerateInitial",
	"PreviewLoop", "Persist", "Done", "Aborted",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Analyzer produces project metadata.
type Analyzer interface {
	Analyze(ctx context.Context, projectPath string) (*metadata.ProjectMetadata, error)
}

// KeyStore is the persisted API key.
type KeyStore interface {
	APIKey() (string, error)
	SaveAPIKey(key string) error
	Location() string
}

// ClientFactory builds the generation client once the key is known.
type ClientFactory func(ctx context.Context, apiKey string) (llm.Client, error)

// Session is one interactive README generation run.
type Session struct {
	UI        ui.Prompter
	FS        fsys.FileSystem
	Keys      KeyStore
	Analyzer  Analyzer
	NewClient ClientFactory
	Logger    log.Logger

	// ProjectRoot is the directory analysed and written to.
	ProjectRoot string
	// APIKey, when set, skips key acquisition.
	APIKey string
	// Provider selects the key prompt wording; empty means the default provider.
	Provider string
	// Model is passed to every generation call; empty means the provider default.
	Model string
}

// Result summarises a finished session.
type Result struct {
	Path       string
	Iterations int
	Written    bool
}

// run holds the values a session accumulates as it moves through its states.
type run struct {
	*Session
	logger     log.Logger
	path       string
	apiKey     string
	generator  *readme.Generator
	input      prompt.Input
	metadata   *metadata.ProjectMetadata
	draft      string
	iterations int
	written    bool
}

// Run drives the session to completion. Declining to regenerate an existing
// README is a successful run with nothing written. Cancellation returns an
// error wrapping ui.ErrCancelled.
func (s *Session) Run(ctx context.Context) (Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.NewNoop()
	}
	r := &run{
		Session: s,
		logger:  logger,
		path:    filepath.Join(s.ProjectRoot, ReadmeName),
		apiKey:  s.APIKey,
	}

	state := StateCheckExisting
	for state != StateDone {
		next, err := r.step(ctx, state)
		if err != nil {
			logger.Debug("session aborted", "state", state, "error", err)
			return r.result(), err
		}
		logger.Debug("session transition", "from", state, "to", next)
		state = next
	}
	return r.result(), nil
}

func (r *run) result() Result {
	return Result{Path: r.path, Iterations: r.iterations, Written: r.written}
}

func (r *run) step(ctx context.Context, state State) (State, error) {
	switch state {
	case StateCheckExisting:
		return r.checkExisting(ctx)
	case StateAcquireKey:
		return r.acquireKey(ctx)
	case StateCollectInput:
		return r.collectInput(ctx)
	case StateAnalyze:
		return r.analyze(ctx)
	case StateGenerateInitial:
		return r.generateInitial(ctx)
	case StatePreviewLoop:
		return r.previewLoop(ctx)
	case StatePersist:
		return r.persist()
	default:
		return StateAborted, fmt.Errorf("unexpected session state %s", state)
	}
}

func (r *run) checkExisting(ctx context.Context) (State, error) {
	exists, err := r.FS.Exists(r.path)
	if err != nil {
		return StateAborted, err
	}
	if !exists {
		return StateAcquireKey, nil
	}

	regenerate, err := r.UI.Confirm(ctx, ReadmeName+" already exists. Do you want to regenerate it?", false)
	if err != nil {
		return StateAborted, err
	}
	if !regenerate {
		r.UI.Outro("Exiting without regenerating README.")
		return StateDone, nil
	}
	return StateAcquireKey, nil
}

func (r *run) acquireKey(ctx context.Context) (State, error) {
	if r.apiKey == "" {
		if key, err := r.Keys.APIKey(); err == nil {
			r.UI.Success("API key found in system config")
			r.apiKey = key
		} else {
			key, err := r.promptForKey(ctx)
			if err != nil {
				return StateAborted, err
			}
			r.apiKey = key
		}
	}

	if err := validator.ValidateAPIKey(r.apiKey); err != nil {
		return StateAborted, err
	}
	client, err := r.NewClient(ctx, r.apiKey)
	if err != nil {
		return StateAborted, err
	}
	r.generator = readme.NewGenerator(client, r.Model)
	return StateCollectInput, nil
}

// promptForKey asks for a key and saves it. A failed save is reported and the
// key is still used for this session.
func (r *run) promptForKey(ctx context.Context) (string, error) {
	name := llm.DisplayName(r.Provider)
	r.UI.Intro(name + " API Key Required")
	r.UI.Note("You can get your API key from: "+llm.KeyURL(r.Provider), "Get API Key")

	key, err := r.UI.Password(ctx, "Enter your "+name+" API key:", validator.ValidateAPIKey)
	if err != nil {
		return "", err
	}

	spin := r.UI.Spinner()
	spin.Start("Saving API key to system config...")
	if err := r.Keys.SaveAPIKey(key); err != nil {
		spin.Stop("Could not save API key")
		r.logger.Warn("config write failed", "path", r.Keys.Location(), "error", err)
		r.UI.Warn(err.Error())
		r.UI.Info("The API key will be used for this session only.")
		return key, nil
	}
	spin.Stop("API key saved to system config")
	r.UI.Note(r.Keys.Location(), "Config Location")
	return key, nil
}

func (r *run) collectInput(ctx context.Context) (State, error) {
	r.UI.Intro("Project Information")

	name, err := r.UI.Text(ctx, "What is your project name?", validator.ValidateProjectName)
	if err != nil {
		return StateAborted, err
	}
	description, err := r.UI.Text(ctx, "What is your project description?", validator.ValidateDescription)
	if err != nil {
		return StateAborted, err
	}

	options := make([]ui.Option, 0, len(validator.KnownLicenses)+1)
	for _, l := range validator.KnownLicenses {
		options = append(options, ui.Option{Value: l, Label: l})
	}
	options = append(options, ui.Option{Value: otherLicense, Label: "Other (specify)"})

	license, err := r.UI.Select(ctx, "What license does your project use?", options)
	if err != nil {
		return StateAborted, err
	}
	if license == otherLicense {
		license, err = r.UI.Text(ctx, "Please specify your license:", validator.ValidateLicense)
		if err != nil {
			return StateAborted, err
		}
		if !validator.IsKnownLicense(license) {
			r.logger.Warn("unrecognised license", "license", license)
			r.UI.Warn(fmt.Sprintf("%q is not a recognised SPDX license; it will be used as given.", license))
		}
	}

	r.input = prompt.Input{Name: name, Description: description, License: license}
	return StateAnalyze, nil
}

func (r *run) analyze(ctx context.Context) (State, error) {
	spin := r.UI.Spinner()
	spin.Start("Analyzing project structure...")
	m, err := r.Analyzer.Analyze(ctx, r.ProjectRoot)
	if err != nil {
		spin.Stop("Project analysis failed")
		return StateAborted, err
	}
	spin.Stop("Project analysis complete")
	r.metadata = m
	return StateGenerateInitial, nil
}

func (r *run) generateInitial(ctx context.Context) (State, error) {
	spin := r.UI.Spinner()
	spin.Start("Generating README using AI...")
	draft, err := r.generator.GenerateInitial(ctx, r.input, r.metadata)
	if err != nil {
		spin.Stop("README generation failed")
		return StateAborted, err
	}
	spin.Stop("Initial README generated")
	r.draft = draft
	return StatePreviewLoop, nil
}

// previewLoop shows the draft and applies one round of feedback. It returns
// StatePreviewLoop again until the user is satisfied.
func (r *run) previewLoop(ctx context.Context) (State, error) {
	r.UI.Intro("README Preview")
	r.UI.Note(r.draft, "Generated README")
	r.UI.Outro("Preview generated successfully")

	improve, err := r.UI.Confirm(ctx, "Would you like to improve the README?", false)
	if err != nil {
		return StateAborted, err
	}
	if !improve {
		return StatePersist, nil
	}

	feedback, err := r.UI.Text(ctx, "What would you like to improve or add?", nil)
	if err != nil {
		return StateAborted, err
	}
	if feedback == "" {
		return StatePreviewLoop, nil
	}

	r.iterations++
	spin := r.UI.Spinner()
	spin.Start(fmt.Sprintf("Improving README (iteration %d)...", r.iterations))
	draft, err := r.generator.Improve(ctx, r.input, r.metadata, r.draft, feedback)
	if err != nil {
		spin.Stop(fmt.Sprintf("README improvement failed (iteration %d)", r.iterations))
		return StateAborted, err
	}
	spin.Stop(fmt.Sprintf("README improved (iteration %d)", r.iterations))
	r.draft = draft
	return StatePreviewLoop, nil
}

func (r *run) persist() (State, error) {
	spin := r.UI.Spinner()
	spin.Start("Saving " + ReadmeName + "...")
	if err := r.FS.WriteFile(r.path, []byte(r.draft)); err != nil {
		spin.Stop("Could not save " + ReadmeName)
		return StateAborted, err
	}
	spin.Stop(ReadmeName + " saved")
	r.written = true

	r.UI.Outro(SuccessMessage(r.path, r.iterations))
	return StateDone, nil
}

// SuccessMessage is the closing line of a run that wrote the README.
func SuccessMessage(path string, iterations int) string {
	msg := fmt.Sprintf("%s successfully generated at %s", ReadmeName, path)
	switch {
	case iterations == 1:
		msg += " (1 improvement)"
	case iterations > 1:
		msg += fmt.Sprintf(" (%d improvements)", iterations)
	}
	return msg
}

// IsCancelled reports whether err is a user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ui.ErrCancelled) || errors.Is(err, context.Canceled)
}
