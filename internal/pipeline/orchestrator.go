package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/content"
	"github.com/dgallion1/docnav/internal/nav"
	"github.com/dgallion1/docnav/internal/sidebars"
	"github.com/dgallion1/docnav/internal/site"
)

// Snapshot is the immutable result of one successful build. Readers hold
// on to a snapshot for the duration of a request.
type Snapshot struct {
	BuildID string
	BuiltAt time.Time
	Site    site.Config
	Content *content.Store
	Nav     *nav.Set
}

// Orchestrator builds the site's navigation and publishes the latest
// good snapshot.
type Orchestrator struct {
	cfg    config.Config
	log    *slog.Logger
	builds *BuildStore
	stats  *BuildStats

	current atomic.Pointer[Snapshot]
	buildMu sync.Mutex // one build at a time
	srcHash string     // guarded by buildMu

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrchestrator(cfg config.Config, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		log:    log,
		builds: NewBuildStore(cfg.BuildTTL, cfg.MaxBuilds),
		stats:  NewBuildStats(cfg.BuildTTL),
	}
}

// Start launches build history cleanup and, when configured, polling for
// source changes.
func (o *Orchestrator) Start(ctx context.Context) {
	bgCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-bgCtx.Done():
				return
			case <-ticker.C:
				o.builds.Cleanup()
			}
		}
	}()

	if o.cfg.RebuildInterval <= 0 {
		return
	}
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(o.cfg.RebuildInterval)
		defer ticker.Stop()
		for {
			select {
			case <-bgCtx.Done():
				return
			case <-ticker.C:
				o.rebuildIfChanged(bgCtx)
			}
		}
	}()
}

// Stop halts background work and waits for it to finish.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Current returns the latest good snapshot, or nil before the first
// successful build.
func (o *Orchestrator) Current() *Snapshot {
	return o.current.Load()
}

// GetBuild returns a build record by id.
func (o *Orchestrator) GetBuild(id string) *Build {
	return o.builds.Get(id)
}

// Builds lists retained build records, newest first.
func (o *Orchestrator) Builds() []BuildSnapshot {
	return o.builds.List()
}

// Stats returns build duration statistics.
func (o *Orchestrator) Stats() StatsSnapshot {
	return o.stats.Snapshot()
}

// Rebuild runs a full build. On success the new snapshot replaces the
// current one; on failure the previous snapshot stays published and the
// error describes every problem found.
func (o *Orchestrator) Rebuild(ctx context.Context, trigger string) (BuildSnapshot, error) {
	o.buildMu.Lock()
	defer o.buildMu.Unlock()

	hash, err := o.sourceHash()
	if err != nil {
		o.log.Warn("fingerprint sources", "error", err)
	}
	snap, err := o.rebuildLocked(ctx, trigger)
	if err == nil {
		o.srcHash = hash
	}
	return snap, err
}

func (o *Orchestrator) rebuildIfChanged(ctx context.Context) {
	o.buildMu.Lock()
	defer o.buildMu.Unlock()

	hash, err := o.sourceHash()
	if err != nil {
		o.log.Warn("fingerprint sources", "error", err)
		return
	}
	if hash == o.srcHash {
		return
	}
	o.log.Info("sources changed, rebuilding")
	// A failed build is recorded; remember the hash so the same broken
	// sources are not rebuilt on every tick.
	o.srcHash = hash
	o.rebuildLocked(ctx, "poll")
}

func (o *Orchestrator) rebuildLocked(ctx context.Context, trigger string) (BuildSnapshot, error) {
	b := newBuild(trigger)
	o.builds.Put(b)
	log := o.log.With("build_id", b.ID, "trigger", trigger)
	log.Info("build started")

	snap, err := o.build(ctx, b, log)
	duration := time.Since(b.StartedAt)
	o.stats.Record(duration, err == nil)
	if err != nil {
		var verr *nav.ValidationError
		if errors.As(err, &verr) {
			for _, e := range verr.Errs {
				b.AddError(e.Error())
			}
		} else {
			b.AddError(err.Error())
		}
		b.Finish(StatusFailed)
		log.Error("build failed", "error", err, "duration_ms", duration.Milliseconds())
		return b.Snapshot(), err
	}

	o.current.Store(snap)
	b.Finish(StatusSucceeded)
	log.Info("build succeeded", "docs", snap.Content.Len(), "sidebars", snap.Nav.Names(), "duration_ms", duration.Milliseconds())
	return b.Snapshot(), nil
}

func (o *Orchestrator) build(ctx context.Context, b *Build, log *slog.Logger) (*Snapshot, error) {
	b.SetPhase("loading site config")
	siteCfg, err := site.Load(o.cfg.Path(o.cfg.SiteConfig))
	if err != nil {
		return nil, err
	}

	b.SetPhase("scanning content")
	store, err := content.Scan(ctx, o.cfg.Path(o.cfg.DocsDir), content.Options{
		DocsRoot:             siteCfg.DocsRoot(),
		Concurrency:          o.cfg.ParseConcurrency,
		TOCMaxLevel:          o.cfg.TOCMaxLevel,
		IncludeDrafts:        o.cfg.IncludeDrafts,
		PDFFallbackPdftotext: o.cfg.PDFFallbackPdftotext,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("scan content: %w", err)
	}

	b.SetPhase("loading sidebars")
	sidebarsPath := o.sidebarsPath(siteCfg)
	data, err := os.ReadFile(sidebarsPath)
	if err != nil {
		return nil, fmt.Errorf("read sidebars %s: %w", sidebarsPath, err)
	}
	decl, err := sidebars.Parse(data, store.SidebarEntries())
	if err != nil {
		return nil, fmt.Errorf("load sidebars %s: %w", sidebarsPath, err)
	}

	b.SetPhase("resolving")
	strictness := siteCfg.BrokenRefs()
	if o.cfg.OnBrokenRefs != "" {
		if strictness, err = nav.ParseStrictness(o.cfg.OnBrokenRefs); err != nil {
			return nil, err
		}
	}
	set, err := nav.BuildSet(decl, store, nav.Options{
		OnBrokenRefs: strictness,
		IndexPrefix:  siteCfg.IndexPrefix(),
		Log:          log,
	})
	if err != nil {
		return nil, err
	}
	b.SetResult(store.Len(), set.Names(), ContentHashHex(data))

	return &Snapshot{
		BuildID: b.ID,
		BuiltAt: time.Now(),
		Site:    siteCfg,
		Content: store,
		Nav:     set,
	}, nil
}

func (o *Orchestrator) sidebarsPath(siteCfg site.Config) string {
	if o.cfg.SidebarsPath != "" {
		return o.cfg.Path(o.cfg.SidebarsPath)
	}
	return o.cfg.Path(siteCfg.Docs.SidebarPath)
}

// sourceHash fingerprints every file a build reads by path, size and
// modification time.
func (o *Orchestrator) sourceHash() (string, error) {
	var lines []string
	add := func(p string, info fs.FileInfo) {
		lines = append(lines, fmt.Sprintf("%s\x00%d\x00%d", p, info.Size(), info.ModTime().UnixNano()))
	}

	sitePath := o.cfg.Path(o.cfg.SiteConfig)
	info, err := os.Stat(sitePath)
	if err != nil {
		return "", err
	}
	add(sitePath, info)

	// The sidebars file is named by the site config unless overridden.
	// An unreadable site config fails the build anyway; fingerprint every
	// YAML file at the site root so fixing it is noticed.
	if siteCfg, err := site.Load(sitePath); err == nil || o.cfg.SidebarsPath != "" {
		p := o.sidebarsPath(siteCfg)
		info, err := os.Stat(p)
		if err != nil {
			return "", err
		}
		add(p, info)
	} else {
		matches, _ := filepath.Glob(filepath.Join(o.cfg.Path("."), "*.y*ml"))
		for _, p := range matches {
			if info, err := os.Stat(p); err == nil {
				add(p, info)
			}
		}
	}

	err = filepath.WalkDir(o.cfg.Path(o.cfg.DocsDir), func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		add(p, info)
		return nil
	})
	if err != nil {
		return "", err
	}

	sort.Strings(lines)
	var buf []byte
	for _, l := range lines {
		buf = append(buf, l...)
		buf = append(buf, '\n')
	}
	return ContentHashHex(buf), nil
}
