package testsupport

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"github.com/pkg/errors"
)

// Gateway in-memory oss.Gateway. Objects holds every URL currently stored.
type Gateway struct {
	mu         sync.Mutex
	n          int
	objects    map[string]bool
	uploads    []string
	deletes    []string
	failUpload map[string]error
	failDelete map[string]error
	// Duration reported for video uploads
	Duration float64
}

var _ oss.Gateway = (*Gateway)(nil)

func NewGateway() *Gateway {
	return &Gateway{
		objects:    map[string]bool{},
		failUpload: map[string]error{},
		failDelete: map[string]error{},
		Duration:   12.5,
	}
}

// FailUpload makes uploads of localPath fail
func (g *Gateway) FailUpload(localPath string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failUpload[localPath] = err
}

// FailDelete makes deletes of url fail, "*" matches any url
func (g *Gateway) FailDelete(url string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failDelete[url] = err
}

func (g *Gateway) Upload(_ context.Context, localPath string) (*oss.Asset, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.uploads = append(g.uploads, localPath)
	if err, ok := g.failUpload[localPath]; ok {
		return nil, err
	}
	if localPath == "" {
		return nil, errors.New("empty upload path")
	}
	g.n++
	url := fmt.Sprintf("http://media.local/videotube/%d-%s", g.n, filepath.Base(localPath))
	g.objects[url] = true
	asset := &oss.Asset{URL: url}
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".mp4", ".mov", ".webm", ".mkv":
		asset.Duration = g.Duration
	}
	return asset, nil
}

func (g *Gateway) Delete(_ context.Context, url string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deletes = append(g.deletes, url)
	if err, ok := g.failDelete[url]; ok {
		return err
	}
	if err, ok := g.failDelete["*"]; ok {
		return err
	}
	delete(g.objects, url)
	return nil
}

// Stored reports whether url is still held
func (g *Gateway) Stored(url string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.objects[url]
}

// Objects number of stored objects
func (g *Gateway) Objects() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.objects)
}

func (g *Gateway) Uploads() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.uploads...)
}

func (g *Gateway) Deletes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.deletes...)
}

// Publisher records published asset events
type Publisher struct {
	mu     sync.Mutex
	events []*mq.AssetEvent
	Err    error
}

var _ mq.AssetEventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishAssetOrphaned(_ context.Context, event *mq.AssetEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *Publisher) Events() []*mq.AssetEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*mq.AssetEvent(nil), p.events...)
}
