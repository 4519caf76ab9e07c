package project

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/farm-stack/create-farm-app/internal/logging"
	"github.com/farm-stack/create-farm-app/internal/options"
	"github.com/farm-stack/create-farm-app/internal/pipeline"
	"github.com/farm-stack/create-farm-app/internal/shell"
	"github.com/spf13/afero"
)

// callLog is shared by the fake collaborators so the test can check the
// order of calls across them.
type callLog struct {
	calls []string
}

type fakeCopier struct {
	log *callLog
	err error
}

func (f *fakeCopier) CopyTree(src, dst string) error {
	f.log.calls = append(f.log.calls, "copy "+src+" -> "+dst)
	return f.err
}

type fakeRunner struct {
	log  *callLog
	fail map[string]shell.Result
}

func (f *fakeRunner) Run(_ context.Context, cmd shell.Command) shell.Result {
	f.log.calls = append(f.log.calls, cmd.Name+" @ "+cmd.Dir)
	if res, ok := f.fail[cmd.Name]; ok {
		return res
	}
	return shell.Result{}
}

const (
	templateDir = "/opt/farm/template"
	targetDir   = "/work/demo"
)

func newDeps(log *callLog) (Deps, *fakeRunner) {
	fsys := afero.NewMemMapFs()
	_ = fsys.MkdirAll(templateDir, 0755)
	_ = afero.WriteFile(fsys, filepath.Join(templateDir, "README.md"), []byte("x"), 0644)
	runner := &fakeRunner{log: log}
	return Deps{
		Fs:     fsys,
		Copier: &fakeCopier{log: log},
		Runner: runner,
	}, runner
}

func newOptions() *options.Options {
	return &options.Options{
		ProjectName:       "demo",
		TargetDirectory:   targetDir,
		TemplateDirectory: templateDir,
		SkipPrompts:       true,
	}
}

func TestCreateRunsAllTasksInOrder(t *testing.T) {
	log := &callLog{}
	deps, _ := newDeps(log)

	res, err := Create(context.Background(), newOptions(), deps)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !res.OK() {
		t.Fatalf("result not OK: %v", res.Err)
	}

	want := []string{
		"copy " + templateDir + " -> " + targetDir,
		"yarn @ " + targetDir,
		"pipenv @ " + filepath.Join(targetDir, "backend"),
		"git @ " + targetDir,
	}
	if !reflect.DeepEqual(log.calls, want) {
		t.Errorf("calls = %v, want %v", log.calls, want)
	}
}

func TestCreateLogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	logging.SetVerbose(true)
	t.Cleanup(func() {
		logging.SetVerbose(false)
		logging.Reset()
	})

	deps, runner := newDeps(&callLog{})
	if _, err := Create(context.Background(), newOptions(), deps); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(buf.String(), `level=INFO msg="Project created" target=`+targetDir) {
		t.Errorf("completion not logged, got: %s", buf.String())
	}

	buf.Reset()
	runner.fail = map[string]shell.Result{"git": {Failed: true, ExitCode: 1}}
	if _, err := Create(context.Background(), newOptions(), deps); err == nil {
		t.Fatal("expected git failure")
	}
	if strings.Contains(buf.String(), "Project created") {
		t.Errorf("failed run should not log completion, got: %s", buf.String())
	}
}

func TestCreateDisabledTasks(t *testing.T) {
	tests := []struct {
		name      string
		noGit     bool
		noInstall bool
		want      []string
	}{
		{"no git", true, false, []string{"copy", "yarn", "pipenv"}},
		{"no install", false, true, []string{"copy", "yarn", "git"}},
		{"neither", true, true, []string{"copy", "yarn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &callLog{}
			deps, _ := newDeps(log)
			opts := newOptions()
			opts.DisableGit = tt.noGit
			opts.DisableInstall = tt.noInstall

			if _, err := Create(context.Background(), opts, deps); err != nil {
				t.Fatalf("Create: %v", err)
			}
			var got []string
			for _, c := range log.calls {
				got = append(got, firstWord(c))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("calls = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateFailureStopsPipeline(t *testing.T) {
	tests := []struct {
		name      string
		failCmd   string
		wantTitle string
		wantErr   error
		wantCalls []string
	}{
		{"frontend", "yarn", TitleFrontend, ErrFrontendInitFailed, []string{"copy", "yarn"}},
		{"backend", "pipenv", TitleBackend, ErrBackendInitFailed, []string{"copy", "yarn", "pipenv"}},
		{"git", "git", TitleGit, ErrGitInitFailed, []string{"copy", "yarn", "pipenv", "git"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &callLog{}
			deps, runner := newDeps(log)
			runner.fail = map[string]shell.Result{tt.failCmd: {Failed: true, ExitCode: 1}}

			res, err := Create(context.Background(), newOptions(), deps)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not match %v", err, tt.wantErr)
			}
			var te *pipeline.TaskError
			if !errors.As(err, &te) || te.Title != tt.wantTitle {
				t.Errorf("error %v is not tagged with %q", err, tt.wantTitle)
			}
			if res == nil || res.OK() {
				t.Error("expected a failed result")
			}

			var got []string
			for _, c := range log.calls {
				got = append(got, firstWord(c))
			}
			if !reflect.DeepEqual(got, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", got, tt.wantCalls)
			}
		})
	}
}

func TestCreateCopyFailure(t *testing.T) {
	log := &callLog{}
	deps, _ := newDeps(log)
	ioErr := errors.New("disk full")
	deps.Copier = &fakeCopier{log: log, err: ioErr}

	_, err := Create(context.Background(), newOptions(), deps)
	if !errors.Is(err, ErrCopyFailed) {
		t.Errorf("error %v does not match ErrCopyFailed", err)
	}
	if !errors.Is(err, ioErr) {
		t.Errorf("error %v does not carry the copy error", err)
	}
	var te *pipeline.TaskError
	if !errors.As(err, &te) || te.Title != TitleCopy {
		t.Errorf("error %v is not tagged with %q", err, TitleCopy)
	}
	if len(log.calls) != 1 {
		t.Errorf("expected only the copy call, got %v", log.calls)
	}
}

func TestCreateTemplateUnavailable(t *testing.T) {
	log := &callLog{}
	deps, _ := newDeps(log)
	opts := newOptions()
	opts.TemplateDirectory = "/missing/template"

	res, err := Create(context.Background(), opts, deps)
	if !errors.Is(err, ErrTemplateUnavailable) {
		t.Fatalf("error = %v, want ErrTemplateUnavailable", err)
	}
	if res != nil {
		t.Error("no pipeline result expected when the template is unavailable")
	}
	if len(log.calls) != 0 {
		t.Errorf("no collaborator should be invoked, got %v", log.calls)
	}
}

func TestCreateStartErrorIsWrapped(t *testing.T) {
	log := &callLog{}
	deps, runner := newDeps(log)
	runner.fail = map[string]shell.Result{"yarn": {Failed: true, ExitCode: -1, Err: context.Canceled}}

	_, err := Create(context.Background(), newOptions(), deps)
	if !errors.Is(err, ErrFrontendInitFailed) || !errors.Is(err, context.Canceled) {
		t.Errorf("error %v should match both ErrFrontendInitFailed and context.Canceled", err)
	}
}

func TestTasksFixedOrder(t *testing.T) {
	opts := newOptions()
	opts.DisableGit = true
	opts.DisableInstall = true

	tasks := Tasks(opts, Deps{})
	var titles []string
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	want := []string{TitleCopy, TitleFrontend, TitleBackend, TitleGit}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}
