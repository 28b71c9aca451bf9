package mem

import (
	"fmt"
	"sort"
	"time"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/evfl-tools/go-evfl/editor/internal"
)

func newMemContext(options Options) *memContext {
	ctx := memContext{options: options}
	ctx.eventFlows.entities = make(map[string]*internal.EventFlowEntity)

	return &ctx
}

type memContext struct {
	options Options

	time time.Time

	eventFlows eventFlowRepository
}

func (c *memContext) Options() editor.Options {
	return c.options.Common
}

func (c *memContext) Time() time.Time {
	return c.time
}

func (c *memContext) EventFlows() internal.EventFlowRepository {
	return &c.eventFlows
}

func (c *memContext) clear() {
	clear(c.eventFlows.entities)
}

type eventFlowRepository struct {
	entities map[string]*internal.EventFlowEntity
}

func (r *eventFlowRepository) Delete(name string) error {
	delete(r.entities, name)
	return nil
}

func (r *eventFlowRepository) Insert(entity *internal.EventFlowEntity) error {
	if _, ok := r.entities[entity.Name]; ok {
		return editor.Error{
			Type:   editor.ErrorConflict,
			Title:  "failed to insert event flow",
			Detail: fmt.Sprintf("event flow %s already exists", entity.Name),
		}
	}

	r.entities[entity.Name] = entity
	return nil
}

func (r *eventFlowRepository) Select(name string) (*internal.EventFlowEntity, error) {
	entity, ok := r.entities[name]
	if !ok {
		return nil, editor.Error{
			Type:   editor.ErrorNotFound,
			Title:  "failed to select event flow",
			Detail: fmt.Sprintf("event flow %s could not be found", name),
		}
	}
	return entity, nil
}

func (r *eventFlowRepository) SelectAll() ([]*internal.EventFlowEntity, error) {
	entities := make([]*internal.EventFlowEntity, 0, len(r.entities))
	for _, entity := range r.entities {
		entities = append(entities, entity)
	}

	sort.Slice(entities, func(i, j int) bool { return entities[i].Name < entities[j].Name })

	return entities, nil
}
