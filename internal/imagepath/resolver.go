// Package imagepath resolves inline "@token" image markers in question text to
// files under the media base directory.
package imagepath

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/marinai/marinai-backend/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// MarkerSeparator splits an image file stem from its marker token.
const MarkerSeparator = "-"

var markerPattern = regexp.MustCompile(`@([\p{L}\p{N}_]+)`)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// DirectoryKey returns the media directory of an exam set, relative to the
// base directory, e.g. "항해사/D1_2023_01". Grade 0 shares grade 1's folder.
func DirectoryKey(set model.ExamSet) string {
	return fmt.Sprintf("%s/%s%s_%d_0%s",
		set.License, set.License.Code(), set.Grade.MediaGrade(), set.Year, set.Inning)
}

// BuildMarkerMap lists the images in dir and maps each lowercase marker token
// to the image path relative to the root of fsys. Files without the separator
// in their stem are skipped.
func BuildMarkerMap(fsys fs.FS, dir string) (markers map[string]string, skipped []string, err error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil, err
	}

	markers = make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := path.Ext(name)
		if !imageExts[strings.ToLower(ext)] {
			continue
		}
		stem := strings.TrimSuffix(name, ext)
		i := strings.LastIndex(stem, MarkerSeparator)
		if i < 0 {
			skipped = append(skipped, name)
			continue
		}
		token := strings.ToLower(stem[i+len(MarkerSeparator):])
		if token == "" {
			skipped = append(skipped, name)
			continue
		}
		markers[token] = path.Join(dir, name)
	}
	return markers, skipped, nil
}

// Markers extracts the lowercase marker tokens found in text, in order of appearance.
func Markers(text string) []string {
	found := markerPattern.FindAllStringSubmatch(text, -1)
	if len(found) == 0 {
		return nil
	}
	tokens := make([]string, len(found))
	for i, m := range found {
		tokens[i] = strings.ToLower(m[1])
	}
	return tokens
}

// Resolver caches one marker map per exam set for the lifetime of the process.
// Media of a published exam set never changes, so entries are never evicted.
type Resolver struct {
	fsys fs.FS
	log  zerolog.Logger

	mu    sync.RWMutex
	maps  map[int]map[string]string
	group singleflight.Group
	scans atomic.Int64
}

// NewResolver creates a Resolver reading image directories from fsys.
func NewResolver(fsys fs.FS, log zerolog.Logger) *Resolver {
	return &Resolver{
		fsys: fsys,
		log:  log.With().Str("component", "image_resolver").Logger(),
		maps: make(map[int]map[string]string),
	}
}

// MarkerMap returns the cached marker map for set, scanning its directory on
// first use. Concurrent first calls for the same set share a single scan.
// A directory that cannot be listed yields an empty map.
func (r *Resolver) MarkerMap(set model.ExamSet) map[string]string {
	r.mu.RLock()
	m, ok := r.maps[set.ID]
	r.mu.RUnlock()
	if ok {
		return m
	}

	v, _, _ := r.group.Do(strconv.Itoa(set.ID), func() (any, error) {
		r.mu.RLock()
		m, ok := r.maps[set.ID]
		r.mu.RUnlock()
		if ok {
			return m, nil
		}

		m = r.scan(set)

		r.mu.Lock()
		r.maps[set.ID] = m
		r.mu.Unlock()
		return m, nil
	})
	return v.(map[string]string)
}

func (r *Resolver) scan(set model.ExamSet) map[string]string {
	r.scans.Add(1)
	dir := DirectoryKey(set)

	markers, skipped, err := BuildMarkerMap(r.fsys, dir)
	if err != nil {
		r.log.Warn().
			Err(err).
			Int("exam_set_id", set.ID).
			Str("directory", dir).
			Msg("Image directory unavailable, serving without images")
		return map[string]string{}
	}
	for _, name := range skipped {
		r.log.Debug().
			Int("exam_set_id", set.ID).
			Str("file", name).
			Msg("Image file has no marker separator, skipping")
	}

	r.log.Debug().
		Int("exam_set_id", set.ID).
		Str("directory", dir).
		Int("markers", len(markers)).
		Msg("Marker map built")
	return markers
}

// Prewarm builds the marker maps of sets ahead of a batch of resolutions.
func (r *Resolver) Prewarm(sets []model.ExamSet) {
	for _, s := range sets {
		r.MarkerMap(s)
	}
}

// Resolve returns the distinct image paths referenced by markers in text,
// sorted. Markers with no matching image are dropped. It returns nil when
// text carries no markers.
func (r *Resolver) Resolve(set model.ExamSet, text string) []string {
	tokens := Markers(text)
	if tokens == nil {
		return nil
	}

	markers := r.MarkerMap(set)
	seen := make(map[string]struct{}, len(tokens))
	paths := []string{}
	for _, t := range tokens {
		p, ok := markers[t]
		if !ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Attach resolves the images of each question against set.
func (r *Resolver) Attach(set model.ExamSet, questions []model.Question) []model.QuestionWithImages {
	out := make([]model.QuestionWithImages, len(questions))
	for i := range questions {
		out[i] = model.QuestionWithImages{
			Question: questions[i],
			ImgPaths: r.Resolve(set, questions[i].FullText()),
		}
	}
	return out
}

// Scans reports how many directory scans the resolver has performed.
func (r *Resolver) Scans() int64 {
	return r.scans.Load()
}
