package layouts

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/askboard/internal/view"
)

// Page wraps page content in the application shell: head, navigation and
// flash messages.
func Page(title string, flash view.FlashData, signedIn bool, content g.Node) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    CalculateTitle(title),
		Language: "en",
		Head: []g.Node{
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(Src("https://unpkg.com/htmx.org@2.0.4"), Defer()),
		},
		Body: []g.Node{
			Class("app"),
			nav(signedIn),
			Main(
				Class("container"),
				flashes(flash),
				content,
			),
		},
	})
}

func nav(signedIn bool) g.Node {
	return Nav(
		Class("nav"),
		A(Href("/dashboard/profile"), g.Text(appName)),
		g.If(signedIn,
			Form(Method("post"), Action("/auth/logout"), Class("nav-logout"),
				Button(Type("submit"), g.Text("Sign out")),
			),
		),
		g.If(!signedIn, A(Href("/auth/login"), g.Text("Sign in"))),
	)
}

func flashes(flash view.FlashData) g.Node {
	if flash.Empty() {
		return nil
	}
	return Div(
		ID("flash"),
		g.Map(flash.Success, func(msg string) g.Node {
			return Div(Class("flash flash-success"), Role("status"), g.Text(msg))
		}),
		g.Map(flash.Error, func(msg string) g.Node {
			return Div(Class("flash flash-error"), Role("alert"), g.Text(msg))
		}),
	)
}
