package editor

// DirtyTracker tracks whether the record under edit has unsaved changes. The
// host binds its unsaved-changes indicator through the notification callback;
// transitions are idempotent, so re-entering a state never re-fires it.
type DirtyTracker struct {
	dirty    bool
	onChange func(dirty bool)
}

// Notify registers the callback fired on every Clean/Dirty transition.
func (d *DirtyTracker) Notify(fn func(dirty bool)) {
	d.onChange = fn
}

// MarkDirty transitions to Dirty. A no-op when already Dirty.
func (d *DirtyTracker) MarkDirty() {
	if d.dirty {
		return
	}
	d.dirty = true
	if d.onChange != nil {
		d.onChange(true)
	}
}

// MarkClean transitions to Clean. Only a successful save should call this.
func (d *DirtyTracker) MarkClean() {
	if !d.dirty {
		return
	}
	d.dirty = false
	if d.onChange != nil {
		d.onChange(false)
	}
}

// IsDirty reports whether there are unsaved changes.
func (d *DirtyTracker) IsDirty() bool {
	return d.dirty
}
