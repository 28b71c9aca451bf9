package mem

import (
	"context"
	"sync"
	"time"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/editor/internal"
)

func New(customizers ...func(*Options)) (editor.Editor, error) {
	options := NewOptions()
	for _, customizer := range customizers {
		customizer(&options)
	}

	if err := options.Validate(); err != nil {
		return nil, err
	}

	return &memEditor{ctx: newMemContext(options)}, nil
}

func NewOptions() Options {
	return Options{
		Common: editor.Options{
			EditorId: editor.DefaultEditorId,
		},
	}
}

type Options struct {
	Common editor.Options // Common options
}

func (o Options) Validate() error {
	return o.Common.Validate()
}

type memEditor struct {
	ctxMutex   sync.RWMutex
	ctx        *memContext
	isReadLock bool
}

func (e *memEditor) AddClip(_ context.Context, cmd editor.AddClipCmd) (editor.Clip, error) {
	defer e.unlock()
	return internal.AddClip(e.wlock(), cmd)
}

func (e *memEditor) CreateEventFlow(_ context.Context, cmd editor.CreateEventFlowCmd) (editor.EventFlow, error) {
	defer e.unlock()
	return internal.CreateEventFlow(e.wlock(), cmd)
}

func (e *memEditor) GetDefinition(_ context.Context, cmd editor.GetDefinitionCmd) (string, error) {
	defer e.unlock()
	return internal.GetDefinition(e.rlock(), cmd)
}

func (e *memEditor) GetParentLinks(_ context.Context, cmd editor.GetParentLinksCmd) ([]editor.ParentLink, error) {
	defer e.unlock()
	return internal.GetParentLinks(e.rlock(), cmd)
}

func (e *memEditor) GetRenderData(_ context.Context, cmd editor.GetRenderDataCmd) (string, error) {
	defer e.unlock()
	return internal.GetRenderData(e.rlock(), cmd)
}

func (e *memEditor) QueryClips(_ context.Context, criteria editor.ClipCriteria) ([]editor.Clip, error) {
	defer e.unlock()
	return internal.QueryClips(e.rlock(), criteria)
}

func (e *memEditor) QueryEventFlows(_ context.Context) ([]editor.EventFlow, error) {
	defer e.unlock()
	return internal.QueryEventFlows(e.rlock())
}

func (e *memEditor) QueryEvents(_ context.Context, criteria editor.EventCriteria) ([]editor.Event, error) {
	defer e.unlock()
	return internal.QueryEvents(e.rlock(), criteria)
}

func (e *memEditor) ReconcileParents(_ context.Context, cmd editor.ReconcileParentsCmd) error {
	defer e.unlock()
	return internal.ReconcileParents(e.wlock(), cmd)
}

func (e *memEditor) RemoveClip(_ context.Context, cmd editor.RemoveClipCmd) error {
	defer e.unlock()
	return internal.RemoveClip(e.wlock(), cmd)
}

func (e *memEditor) RemoveEventFlow(_ context.Context, cmd editor.RemoveEventFlowCmd) error {
	defer e.unlock()
	return internal.RemoveEventFlow(e.wlock(), cmd)
}

func (e *memEditor) UpdateClip(_ context.Context, cmd editor.UpdateClipCmd) (editor.Clip, error) {
	defer e.unlock()
	return internal.UpdateClip(e.wlock(), cmd)
}

func (e *memEditor) Shutdown() {
	e.ctx.clear()
}

func (e *memEditor) rlock() *memContext {
	now := time.Now()

	e.ctxMutex.RLock()
	e.isReadLock = true

	e.ctx.time = now.UTC().Truncate(time.Millisecond)

	return e.ctx
}

func (e *memEditor) wlock() *memContext {
	now := time.Now()

	e.ctxMutex.Lock()
	e.isReadLock = false

	e.ctx.time = now.UTC().Truncate(time.Millisecond)

	return e.ctx
}

func (e *memEditor) unlock() {
	if e.isReadLock {
		e.ctxMutex.RUnlock()
	} else {
		e.ctxMutex.Unlock()
	}
}
