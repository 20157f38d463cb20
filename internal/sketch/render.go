package sketch

// Redraw clears dst, renders the committed entities in order and then the
// preview, if any, on top. With a nil surface nothing happens and
// ErrNoSurface is returned.
func Redraw(dst Surface, scene *Scene, preview Drawable) error {
	if dst == nil {
		return ErrNoSurface
	}
	dst.Clear()
	if scene != nil {
		scene.Render(dst)
	}
	if preview != nil {
		preview.Render(dst)
	}
	return nil
}
