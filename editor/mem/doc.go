// Package mem implements an in-memory event flow editor.
/*
mem provides a full implementation of the [editor.Editor] interface.

Create an Editor

	e, err := mem.New(func(o *mem.Options) {
		o.Common.EditorId = "my-mem-editor"
	})
	if err != nil {
		log.Fatalf("failed to create mem editor: %v", err)
	}

	defer e.Shutdown()
*/
package mem
