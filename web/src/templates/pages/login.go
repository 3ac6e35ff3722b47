package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Login is the sign-in form. email pre-fills the field after a failed attempt.
func Login(email string) g.Node {
	return Section(
		ID("login"),
		H1(g.Text("Sign in")),
		Form(
			Method("post"),
			Action("/auth/login"),
			Class("stack"),
			Label(For("email"), g.Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Value(email), Required(), AutoComplete("email")),
			Label(For("password"), g.Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required(), AutoComplete("current-password")),
			Button(Type("submit"), g.Text("Sign in")),
		),
	)
}
