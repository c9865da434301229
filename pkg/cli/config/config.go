package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/grcengine/pkg/domain/model"
	"github.com/secmon-lab/grcengine/pkg/domain/model/matrix"
	"github.com/secmon-lab/grcengine/pkg/domain/model/scoring"
	"github.com/secmon-lab/grcengine/pkg/domain/types"
	"github.com/secmon-lab/grcengine/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// LibraryFile is the TOML layout of a library file
type LibraryFile struct {
	Matrices []Matrix `toml:"matrix"`
	Forms    []Form   `toml:"form"`

	// dir is the directory of the file; definition paths are relative to it
	dir string
}

// Matrix declares a risk matrix. Exactly one of Definition (a path to a
// JSON payload) and JSON (an inline payload) is set.
type Matrix struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Definition  string `toml:"definition"`
	JSON        string `toml:"json"`
}

// Form declares a scoring form
type Form struct {
	ID     string  `toml:"id"`
	Name   string  `toml:"name"`
	Groups []Group `toml:"group"`
}

type Group struct {
	ID        string   `toml:"id"`
	PromptKey string   `toml:"prompt_key"`
	Category  string   `toml:"category"`
	Factors   []Factor `toml:"factor"`
}

// Factor lists the labels of the 10 slots. An empty label disables the slot.
type Factor struct {
	ID        string   `toml:"id"`
	PromptKey string   `toml:"prompt_key"`
	Choices   []string `toml:"choices"`
}

// ToRecord resolves the matrix definition relative to baseDir
func (m *Matrix) ToRecord(baseDir string) (*model.MatrixRecord, error) {
	id := types.MatrixID(m.ID)
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid matrix ID", goerr.V(MatrixIDKey, m.ID))
	}
	if m.Name == "" {
		return nil, goerr.Wrap(ErrMissingName, "matrix name is required", goerr.V(MatrixIDKey, m.ID))
	}

	var data []byte
	switch {
	case m.Definition != "" && m.JSON != "":
		return nil, goerr.Wrap(ErrInvalidConfig, "definition and json are exclusive", goerr.V(MatrixIDKey, m.ID))

	case m.Definition != "":
		path := m.Definition
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		// #nosec G304 - path comes from the operator supplied library file
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read matrix definition",
				goerr.V(MatrixIDKey, m.ID),
				goerr.V("path", path),
			)
		}
		data = raw

	case m.JSON != "":
		data = []byte(m.JSON)

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "matrix needs definition or json", goerr.V(MatrixIDKey, m.ID))
	}

	def, err := matrix.ParseDefinition(data)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid matrix definition",
			goerr.V(MatrixIDKey, m.ID),
			goerr.V("cause", err.Error()),
		)
	}

	return &model.MatrixRecord{
		ID:          id,
		Name:        m.Name,
		Description: m.Description,
		Definition:  def,
	}, nil
}

// ToForm converts the form declaration and validates it
func (f *Form) ToForm() (*scoring.Form, error) {
	if f.Name == "" {
		return nil, goerr.Wrap(ErrMissingName, "form name is required", goerr.V(FormIDKey, f.ID))
	}

	form := &scoring.Form{
		ID:     types.FormID(f.ID),
		Name:   f.Name,
		Groups: make([]scoring.FactorGroup, len(f.Groups)),
	}

	for i, g := range f.Groups {
		group := scoring.FactorGroup{
			ID:        types.GroupID(g.ID),
			PromptKey: g.PromptKey,
			Category:  types.FactorCategory(g.Category),
			Factors:   make([]scoring.Factor, len(g.Factors)),
		}

		for j, factor := range g.Factors {
			if len(factor.Choices) != scoring.SlotCount {
				return nil, goerr.Wrap(ErrInvalidChoices, "invalid factor choices",
					goerr.V(FormIDKey, f.ID),
					goerr.V(GroupIDKey, g.ID),
					goerr.V(FactorIDKey, factor.ID),
					goerr.V("count", len(factor.Choices)),
				)
			}

			converted := scoring.Factor{
				ID:        types.FactorID(factor.ID),
				PromptKey: factor.PromptKey,
			}
			copy(converted.Choices[:], factor.Choices)
			group.Factors[j] = converted
		}

		form.Groups[i] = group
	}

	if err := form.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid scoring form",
			goerr.V(FormIDKey, f.ID),
			goerr.V("cause", err.Error()),
		)
	}

	return form, nil
}

// LoadLibraryFile loads a library file from a TOML file
func LoadLibraryFile(path string) (*LibraryFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "library file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read library file", goerr.V(ConfigPathKey, path))
	}

	var file LibraryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML library",
			goerr.V(ConfigPathKey, path),
			goerr.V("cause", err.Error()),
		)
	}
	file.dir = filepath.Dir(path)

	return &file, nil
}

// collectFiles expands directories into the TOML files they contain,
// sorted by path
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, goerr.Wrap(ErrConfigNotFound, "config path not found", goerr.V(ConfigPathKey, path))
			}
			return nil, goerr.Wrap(err, "failed to stat config path", goerr.V(ConfigPathKey, path))
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".toml") {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to walk config directory", goerr.V(ConfigPathKey, path))
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// LoadLibrary builds a library from the built-in matrices and forms plus
// every file or directory in paths. Config entries override built-ins with
// the same ID; duplicates among config entries are errors.
func LoadLibrary(paths ...string) (*model.Library, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return nil, err
	}

	lib := model.NewDefaultLibrary()
	matrixSeen := make(map[string]string)
	formSeen := make(map[string]string)

	for _, path := range files {
		file, err := LoadLibraryFile(path)
		if err != nil {
			return nil, err
		}

		for _, m := range file.Matrices {
			if prev, ok := matrixSeen[m.ID]; ok {
				return nil, goerr.Wrap(ErrDuplicateMatrixID, "matrix declared twice",
					goerr.V(MatrixIDKey, m.ID),
					goerr.V(ConfigPathKey, path),
					goerr.V("previous", prev),
				)
			}
			matrixSeen[m.ID] = path

			record, err := m.ToRecord(file.dir)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to load matrix", goerr.V(ConfigPathKey, path))
			}
			lib.RegisterMatrix(record)
		}

		for _, f := range file.Forms {
			if prev, ok := formSeen[f.ID]; ok {
				return nil, goerr.Wrap(ErrDuplicateFormID, "form declared twice",
					goerr.V(FormIDKey, f.ID),
					goerr.V(ConfigPathKey, path),
					goerr.V("previous", prev),
				)
			}
			formSeen[f.ID] = path

			form, err := f.ToForm()
			if err != nil {
				return nil, goerr.Wrap(err, "failed to load form", goerr.V(ConfigPathKey, path))
			}
			lib.RegisterForm(form)
		}
	}

	return lib, nil
}

// Library holds CLI flags for the matrix and form library
type Library struct {
	paths []string
}

// Flags returns CLI flags for library configuration
func (l *Library) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Library TOML file or directory (repeatable). Built-in matrices and forms are always available",
			Sources:     cli.EnvVars("GRCENGINE_CONFIG"),
			Destination: &l.paths,
		},
	}
}

// Paths returns the configured library paths
func (l *Library) Paths() []string {
	return l.paths
}

// Configure loads the library
func (l *Library) Configure() (*model.Library, error) {
	lib, err := LoadLibrary(l.paths...)
	if err != nil {
		return nil, err
	}

	logging.Default().Info("Library loaded",
		"paths", l.paths,
		"matrices", len(lib.Matrices()),
		"forms", len(lib.Forms()),
	)
	return lib, nil
}
