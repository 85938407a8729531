// Package levels loads level files: a map plus the roster that starts on it.
// This package depends on sim and tilemap; neither depends on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/levels/formats"
	"github.com/vovakirdan/gameone/internal/sim"
	"github.com/vovakirdan/gameone/internal/tilemap"
)

// DefaultLevel is the level whose roster is used for bare .txt maps.
const DefaultLevel = "level1.json"

var (
	ErrMissingAttribute  = formats.ErrMissingAttribute
	ErrUnsupportedFormat = errors.New("levels: unsupported file")
	ErrNotFound          = errors.New("levels: level not found")
	ErrInvalidLevel      = errors.New("levels: invalid level")
)

//go:embed data
var embedded embed.FS

// Level is a loaded level ready to build an arena from.
type Level struct {
	ID       string
	Index    int
	Name     string
	FilePath string

	MapFile string
	Format  tilemap.Format
	Map     *tilemap.Map

	Player  sim.Descriptor
	Enemies []sim.Descriptor

	// Warnings lists roster/map mismatches that did not fail the load.
	Warnings []string
}

// NewArena builds a populated arena for the level.
func (l *Level) NewArena(opts ...sim.Option) (*sim.Arena, error) {
	arena, err := sim.NewArena(l.Map, opts...)
	if err != nil {
		return nil, err
	}
	if err := arena.Populate(l.Player, l.Enemies); err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return arena, nil
}

// Loader reads levels from a filesystem.
type Loader struct {
	fsys   fs.FS
	logger *log.Logger
}

// NewLoader creates a loader over fsys. Paths are slash-separated and
// relative to its root.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:   fsys,
		logger: log.New(io.Discard),
	}
}

// Embedded returns a loader over the levels built into the binary.
func Embedded() *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return NewLoader(sub)
}

// Dir returns a loader over a directory on disk.
func Dir(root string) *Loader {
	return NewLoader(os.DirFS(root))
}

// SetLogger sets the logger used for load progress and warnings.
func (l *Loader) SetLogger(logger *log.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// LoadAll loads every levelN file at the root. Files that fail to load are
// skipped with a warning. Levels are sorted by index, then name.
func (l *Loader) LoadAll() ([]Level, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: listing: %w", err)
	}

	var levels []Level
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isSupportedExtension(path.Ext(name)) {
			continue
		}
		if _, ok := levelIndex(name); !ok {
			continue
		}

		level, err := l.LoadFile(name)
		if err != nil {
			l.logger.Warn("skipping level", "file", name, "err", err)
			continue
		}
		levels = append(levels, level)
	}

	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Index != levels[j].Index {
			return levels[i].Index < levels[j].Index
		}
		return levels[i].Name < levels[j].Name
	})

	return levels, nil
}

// ListIDs returns the IDs of all loadable levels in order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// LoadByID loads the level whose file base name is id.
func (l *Loader) LoadByID(id string) (Level, error) {
	for _, ext := range formats.Extensions() {
		name := id + ext
		if _, err := fs.Stat(l.fsys, name); err == nil {
			return l.LoadFile(name)
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Load loads a level file, or a bare legacy .txt map populated with the
// default level's roster.
func (l *Loader) Load(name string) (Level, error) {
	ext := strings.ToLower(path.Ext(name))
	switch {
	case isSupportedExtension(ext):
		return l.LoadFile(name)
	case ext == ".txt":
		return l.loadBareMap(name)
	default:
		return Level{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// LoadFile loads a single level document and its map.
func (l *Loader) LoadFile(name string) (Level, error) {
	l.logger.Info("loading level", "file", name)

	ext := strings.ToLower(path.Ext(name))
	if !isSupportedExtension(ext) {
		return Level{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Level{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Level{}, fmt.Errorf("levels: reading %s: %w", name, err)
	}

	doc, err := formats.ParseDocument(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", name, err)
	}

	level := Level{
		ID:       baseName(name),
		Name:     doc.LevelName,
		FilePath: name,
		Format:   tilemap.Format(doc.Map.Format),
	}
	level.Index, _ = levelIndex(name)
	if level.Name == "" {
		level.Name = level.ID
	}

	if doc.Map.Tiles != "" {
		level.Map, err = tilemap.Parse([]byte(doc.Map.Tiles), level.Format)
	} else {
		level.MapFile = path.Join(path.Dir(name), doc.Map.Filename)
		level.Map, err = tilemap.Load(l.fsys, level.MapFile, level.Format)
	}
	if err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", name, err)
	}

	level.Player = descriptor(*doc.Player, sim.KindPlayer)
	for _, e := range doc.Enemies {
		level.Enemies = append(level.Enemies, descriptor(e, sim.KindEnemy))
	}

	if err := l.validate(&level); err != nil {
		return Level{}, err
	}
	return level, nil
}

func (l *Loader) loadBareMap(name string) (Level, error) {
	level, err := l.LoadFile(DefaultLevel)
	if err != nil {
		return Level{}, err
	}

	m, err := tilemap.Load(l.fsys, name, tilemap.Legacy)
	if err != nil {
		return Level{}, fmt.Errorf("levels: %w", err)
	}

	level.ID = baseName(name)
	level.FilePath = name
	level.MapFile = name
	level.Format = tilemap.Legacy
	level.Map = m
	level.Index = 0
	level.Warnings = nil

	if err := l.validate(&level); err != nil {
		return Level{}, err
	}
	return level, nil
}

func descriptor(a formats.ActorSpec, kind sim.Kind) sim.Descriptor {
	x, y := a.Origin()
	return sim.Descriptor{
		Name:          a.Name,
		Kind:          kind,
		Origin:        core.P(x, y),
		MaximumEnergy: a.Energy(),
		MaximumLives:  a.Lives(),
	}
}

// levelIndex extracts N from "levelN.ext".
func levelIndex(name string) (int, bool) {
	base := baseName(name)
	if !strings.HasPrefix(base, "level") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(base, "level"))
	if err != nil {
		return 0, false
	}
	return n, true
}

func baseName(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.Extensions() {
		if strings.EqualFold(ext, supported) {
			return true
		}
	}
	return false
}
