package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/MikeySharma/frame-generator/pkg/compositor"
	"github.com/MikeySharma/frame-generator/pkg/loader"
	"github.com/MikeySharma/frame-generator/pkg/output"
	"github.com/MikeySharma/frame-generator/pkg/types"
)

var ErrNoPhoto = errors.New("no photo selected")

// Output is one fully regenerated composite
type Output struct {
	Image      *image.NRGBA
	Data       []byte
	Format     types.Format
	Params     types.Params
	Generation uint64
}

// Filename returns the suggested download name of the output
func (o Output) Filename() string {
	return output.Filename(o.Format)
}

// Store holds the current photo and composite parameters and regenerates
// the output whenever any of them changes while a photo is present.
type Store struct {
	compositor *compositor.Compositor
	frames     loader.FrameSource
	encoder    *output.Encoder

	mu         sync.Mutex
	params     types.Params
	photo      image.Image
	out        *Output
	generation uint64
	observers  []func(Output)
}

// New creates a store with default parameters and no photo
func New(comp *compositor.Compositor, frames loader.FrameSource, enc *output.Encoder) *Store {
	if comp == nil {
		comp = compositor.New()
	}
	if enc == nil {
		enc = output.NewEncoder(types.PNG)
	}
	return &Store{
		compositor: comp,
		frames:     frames,
		encoder:    enc,
		params:     types.DefaultParams(),
	}
}

// Subscribe registers fn to be called with every new output.
// Observers run while the store is locked and must not call back into it.
func (s *Store) Subscribe(fn func(Output)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Params returns the current parameters
func (s *Store) Params() types.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// HasPhoto reports whether a photo has been selected
func (s *Store) HasPhoto() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photo != nil
}

// Output returns the latest composite, if any
func (s *Store) Output() (Output, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.out == nil {
		return Output{}, false
	}
	return *s.out, true
}

// SetPhoto replaces the photo, resets the zoom and recomputes.
// Frame selection and frame size are kept.
func (s *Store) SetPhoto(ctx context.Context, photo image.Image) error {
	if photo == nil {
		return ErrNoPhoto
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.params
	next.Zoom = types.ZoomRange.Default
	return s.apply(ctx, photo, next)
}

// SetFrame selects another frame and recomputes
func (s *Store) SetFrame(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.params
	next.FrameID = id
	return s.apply(ctx, s.photo, next)
}

// SetZoom changes the photo zoom and recomputes
func (s *Store) SetZoom(ctx context.Context, zoom float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.params
	next.Zoom = zoom
	return s.apply(ctx, s.photo, next)
}

// SetFrameSize changes the frame size and recomputes
func (s *Store) SetFrameSize(ctx context.Context, size float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.params
	next.FrameSize = size
	return s.apply(ctx, s.photo, next)
}

// Update replaces all parameters at once and recomputes
func (s *Store) Update(ctx context.Context, p types.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ctx, s.photo, p)
}

// Refresh recomputes the output from the current state
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.photo == nil {
		return ErrNoPhoto
	}
	return s.apply(ctx, s.photo, s.params)
}

// Reset drops the photo and output and restores default parameters
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photo = nil
	s.out = nil
	s.params = types.DefaultParams()
}

// apply commits photo and params when the composite can be produced.
// On failure the previous state is left untouched. Callers hold s.mu.
func (s *Store) apply(ctx context.Context, photo image.Image, p types.Params) error {
	if photo == nil {
		if s.frames != nil {
			if _, err := s.frames.Frame(ctx, p.FrameID); err != nil {
				return err
			}
		}
		s.params = p
		return nil
	}

	out, err := s.compose(ctx, photo, p)
	if err != nil {
		return err
	}

	s.photo = photo
	s.params = p
	s.out = out
	for _, fn := range s.observers {
		fn(*out)
	}
	return nil
}

func (s *Store) compose(ctx context.Context, photo image.Image, p types.Params) (*Output, error) {
	var frame image.Image
	if s.frames != nil {
		f, err := s.frames.Frame(ctx, p.FrameID)
		if err != nil {
			return nil, err
		}
		frame = f
	}

	img := s.compositor.Compose(photo, frame, p)
	data, err := s.encoder.Bytes(img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode composite: %w", err)
	}

	s.generation++
	return &Output{
		Image:      img,
		Data:       data,
		Format:     s.encoder.Format,
		Params:     p,
		Generation: s.generation,
	}, nil
}
