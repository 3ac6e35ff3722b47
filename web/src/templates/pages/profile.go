package pages

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/askboard/internal/domain"
)

// ProfileShell is the profile page before its data arrives: a loading
// skeleton that htmx replaces with the form fragment from contentURL.
func ProfileShell(contentURL string) g.Node {
	return Section(
		ID("profile"),
		hx.Get(contentURL),
		hx.Trigger("load"),
		hx.Swap("outerHTML"),
		ProfileSkeleton(),
	)
}

// ProfileSkeleton is the placeholder shown while the profile loads.
func ProfileSkeleton() g.Node {
	return Div(
		Class("skeleton"),
		Aria("busy", "true"),
		Aria("label", "Loading profile"),
		Div(Class("skeleton-line skeleton-title")),
		Div(Class("skeleton-line")),
		Div(Class("skeleton-line skeleton-block")),
	)
}

// ProfileForm is the profile edit fragment for p.
func ProfileForm(email string, p *domain.Profile, action string) g.Node {
	var displayName, bio string
	if p != nil {
		if p.DisplayName != nil {
			displayName = *p.DisplayName
		}
		if p.Bio != nil {
			bio = *p.Bio
		}
	}

	return Section(
		ID("profile"),
		H1(g.Text("Your profile")),
		P(Class("muted"), g.Text(email)),
		Form(
			Method("post"),
			Action(action),
			Class("stack"),
			Label(For("display_name"), g.Text("Display name")),
			Input(Type("text"), ID("display_name"), Name("display_name"), Value(displayName)),
			Label(For("bio"), g.Text("Bio")),
			Textarea(ID("bio"), Name("bio"), Rows("4"), g.Text(bio)),
			Button(Type("submit"), g.Text("Save")),
		),
	)
}

// ProfileMissing is shown when the signed-in user has no profile record.
func ProfileMissing() g.Node {
	return Section(
		ID("profile"),
		P(Class("flash flash-error"), g.Text("No profile exists for this account yet.")),
	)
}
