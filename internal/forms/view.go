package forms

// View is the serialisable state of an engine.
type View struct {
	FormType   string      `json:"form_type"`
	Title      string      `json:"title"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Progress   int         `json:"progress"`
	PageTitle  string      `json:"page_title"`
	Fields     []Field     `json:"fields"`
	Answers    Answers     `json:"answers"`
	Errors     FieldErrors `json:"errors"`
	Submitted  bool        `json:"submitted"`
}

// View snapshots the engine for rendering.
func (e *Engine) View() View {
	page, _ := e.def.Page(e.page)
	return View{
		FormType:   e.def.Type,
		Title:      e.def.Title,
		Page:       e.page,
		TotalPages: e.def.TotalPages(),
		Progress:   e.Progress(),
		PageTitle:  page.Title,
		Fields:     page.Fields,
		Answers:    e.Answers(),
		Errors:     e.Errors(),
		Submitted:  e.submitted,
	}
}
