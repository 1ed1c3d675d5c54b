package view

// Flash is a one-shot status message rendered at the top of a page.
// Kind selects the alert styling: success, warning, or danger.
type Flash struct {
	Kind    string
	Message string
}

// LoginForm backs the login page.
type LoginForm struct {
	Username string
	Error    string
}

// RegisterForm backs the registration page, carrying submitted values
// and per-field validation messages back into the form.
type RegisterForm struct {
	Name     string
	Username string
	Email    string
	Errors   map[string]string
}

// ArticleForm backs the add and edit article pages.
type ArticleForm struct {
	Heading string
	Action  string
	Title   string
	Content string
	Errors  map[string]string
}
