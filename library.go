package magenta

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // atlases are authored as PNG
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrUnknownAnim is returned when a name is not registered in a library.
var ErrUnknownAnim = errors.New("magenta: unknown animation")

// AnimSpec describes one atlas in a manifest.
type AnimSpec struct {
	Name string `yaml:"name"`
	// Path is relative to the library's file system.
	Path string `yaml:"path"`
	// FrameDuration overrides the manifest default when positive.
	FrameDuration float64 `yaml:"frame_duration"`
	Anchor        Anchor  `yaml:"anchor"`
	// Scale is the default draw scale; zero means 1.
	Scale float64 `yaml:"scale"`
}

// Manifest lists the atlases a game loads.
type Manifest struct {
	FrameDuration float64 `yaml:"frame_duration"`
	// CacheDir, when set, is an OS directory holding segmentation results
	// keyed by atlas content.
	CacheDir string     `yaml:"cache_dir"`
	Anims    []AnimSpec `yaml:"anims"`
}

// ParseManifest decodes manifest YAML and fills defaults.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("magenta: failed to parse manifest: %w", err)
	}
	if m.FrameDuration <= 0 {
		m.FrameDuration = DefaultFrameDuration
	}
	seen := make(map[string]bool, len(m.Anims))
	for i := range m.Anims {
		a := &m.Anims[i]
		if a.Name == "" {
			return nil, fmt.Errorf("magenta: manifest anim %d has no name", i)
		}
		if a.Path == "" {
			return nil, fmt.Errorf("magenta: manifest anim %q has no path", a.Name)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("magenta: manifest anim %q listed twice", a.Name)
		}
		seen[a.Name] = true
		if a.FrameDuration <= 0 {
			a.FrameDuration = m.FrameDuration
		}
		if a.Scale == 0 {
			a.Scale = 1
		}
	}
	return &m, nil
}

// AnimLibrary loads, caches and reloads animations by name.
type AnimLibrary struct {
	fsys     fs.FS
	cacheDir string
	anims    map[string]*Anim
	specs    map[string]AnimSpec

	// OnReload, if set, is called after an animation is reloaded in place.
	OnReload func(a *Anim)
}

// NewAnimLibrary creates an empty library reading atlases from fsys.
func NewAnimLibrary(fsys fs.FS) *AnimLibrary {
	return &AnimLibrary{
		fsys:  fsys,
		anims: make(map[string]*Anim),
		specs: make(map[string]AnimSpec),
	}
}

// LoadManifest parses the manifest at name in the library's file system and
// loads every atlas it lists. A failing atlas does not stop the others; all
// failures are returned together.
func (l *AnimLibrary) LoadManifest(name string) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("magenta: read manifest %s: %w", name, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return err
	}
	l.cacheDir = m.CacheDir

	var errs error
	for _, spec := range m.Anims {
		if _, err := l.Load(spec); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Load segments the atlas described by spec and registers it under
// spec.Name, replacing any previous registration.
func (l *AnimLibrary) Load(spec AnimSpec) (*Anim, error) {
	a, err := l.load(spec)
	if err != nil {
		return nil, err
	}
	l.anims[spec.Name] = a
	l.specs[spec.Name] = spec
	return a, nil
}

func (l *AnimLibrary) load(spec AnimSpec) (*Anim, error) {
	data, err := fs.ReadFile(l.fsys, spec.Path)
	if err != nil {
		return nil, fmt.Errorf("magenta: load %s: %w", spec.Name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("magenta: decode %s: %w", spec.Path, err)
	}

	var a *Anim
	if seg, ok := l.readCache(data); ok {
		a = NewAnimFromSegmentation(spec.Name, img, seg)
	} else {
		seg := Segment(GridFromImage(img))
		l.writeCache(data, seg)
		a = NewAnimFromSegmentation(spec.Name, img, seg)
	}
	if spec.FrameDuration > 0 {
		a.FrameDuration = spec.FrameDuration
	}
	logger.Info("loaded animation",
		zap.String("anim", spec.Name),
		zap.String("path", spec.Path),
		zap.Int("frames", len(a.Frames)),
		zap.Int("padding", a.Padding))
	return a, nil
}

// Get returns the animation registered under name.
func (l *AnimLibrary) Get(name string) (*Anim, error) {
	if a, ok := l.anims[name]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownAnim, name)
}

// Spec returns the manifest entry name was loaded from.
func (l *AnimLibrary) Spec(name string) (AnimSpec, bool) {
	s, ok := l.specs[name]
	return s, ok
}

// Names returns the registered names in sorted order.
func (l *AnimLibrary) Names() []string {
	names := make([]string, 0, len(l.anims))
	for n := range l.anims {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Sprite returns a new sprite playing name with its manifest anchor and scale.
func (l *AnimLibrary) Sprite(name string) (*AnimSprite, error) {
	a, err := l.Get(name)
	if err != nil {
		return nil, err
	}
	spec := l.specs[name]
	s := NewAnimSprite(a, spec.Anchor)
	if spec.Scale != 0 {
		s.Scale = spec.Scale
	}
	return s, nil
}

// Reload re-reads and re-segments name. The existing *Anim is updated in
// place so sprites holding it pick up the new frames; its old texture is
// released.
func (l *AnimLibrary) Reload(name string) error {
	old, ok := l.anims[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAnim, name)
	}
	fresh, err := l.load(l.specs[name])
	if err != nil {
		return err
	}
	if old.texture != nil {
		old.texture.Deallocate()
	}
	*old = *fresh
	if l.OnReload != nil {
		l.OnReload(old)
	}
	return nil
}

// ReloadPath reloads every animation whose atlas is file p and returns their
// names. p may be an OS path; only base names are compared, so events from a
// watcher on the asset directory map straight onto manifest entries.
func (l *AnimLibrary) ReloadPath(p string) ([]string, error) {
	base := filepath.Base(p)
	var names []string
	var errs error
	for _, name := range l.Names() {
		if path.Base(l.specs[name].Path) != base {
			continue
		}
		if err := l.Reload(name); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		names = append(names, name)
	}
	return names, errs
}

func (l *AnimLibrary) cachePath(data []byte) string {
	return filepath.Join(l.cacheDir, CacheKey(data)+".mgsc")
}

func (l *AnimLibrary) readCache(data []byte) (Segmentation, bool) {
	if l.cacheDir == "" {
		return Segmentation{}, false
	}
	f, err := os.Open(l.cachePath(data))
	if err != nil {
		return Segmentation{}, false
	}
	defer f.Close()
	s, err := ReadSegmentation(f)
	if err != nil {
		logger.Warn("ignoring segmentation cache", zap.String("path", f.Name()), zap.Error(err))
		return Segmentation{}, false
	}
	return s, true
}

func (l *AnimLibrary) writeCache(data []byte, s Segmentation) {
	if l.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(l.cacheDir, 0o755); err != nil {
		logger.Warn("segmentation cache", zap.Error(err))
		return
	}
	p := l.cachePath(data)
	f, err := os.Create(p)
	if err != nil {
		logger.Warn("segmentation cache", zap.Error(err))
		return
	}
	err = WriteSegmentation(f, s)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Warn("segmentation cache", zap.String("path", p), zap.Error(err))
		_ = os.Remove(p)
	}
}
