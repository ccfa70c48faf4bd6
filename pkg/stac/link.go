package stac

import (
	"context"

	"github.com/stacforge/gostac/pkg/errors"
)

// LinkType governs how a link's href is rendered on serialization.
type LinkType string

const (
	// LinkAbsolute renders the full absolute href.
	LinkAbsolute LinkType = "ABSOLUTE"
	// LinkRelative renders the href relative to the owning object's self
	// href when possible.
	LinkRelative LinkType = "RELATIVE"
)

// Link is a typed edge in the STAC object graph. Its target is polymorphic
// over resolution state: either an unresolved href string or a resolved
// pointer to another [Object]. Traversing an unresolved link triggers I/O
// through [Link.Resolve].
//
// The owner back-reference is non-owning. It exists only to resolve relative
// hrefs against the owner's self href and to look up the owner's extension
// declarations; it is never traversed for lifetime purposes.
type Link struct {
	Rel         string
	MediaType   string
	Title       string
	Type        LinkType
	ExtraFields map[string]any

	href   string
	target Object
	owner  Object
}

// NewLink creates an unresolved link with the given relation and href.
func NewLink(rel, href string) *Link {
	return &Link{Rel: rel, Type: LinkAbsolute, href: href}
}

// NewResolvedLink creates a link whose target is already resolved to obj.
func NewResolvedLink(rel string, obj Object) *Link {
	return &Link{Rel: rel, Type: LinkAbsolute, target: obj}
}

// selfLink builds the "self" link for an absolute href.
func selfLink(href string) *Link {
	l := NewLink(RelSelf, href)
	l.MediaType = MediaTypeJSON
	return l
}

// IsResolved reports whether the target is an object rather than a string
// href.
func (l *Link) IsResolved() bool {
	return l.target != nil
}

// Target returns the resolved target object, or nil if the link is
// unresolved.
func (l *Link) Target() Object {
	return l.target
}

// TargetHref returns the raw unresolved href string. For resolved links it
// returns the target's self href.
func (l *Link) TargetHref() string {
	if l.target != nil {
		return l.target.SelfHref()
	}
	return l.href
}

// Owner returns the owning object, or nil.
func (l *Link) Owner() Object {
	return l.owner
}

// SetOwner sets the owning object and returns the link for chaining.
func (l *Link) SetOwner(o Object) *Link {
	l.owner = o
	return l
}

// AbsoluteHref returns the link's href in absolute form: the target's own
// self href when resolved, otherwise the unresolved href made absolute
// against the owner's self href. Returns "" when the href cannot be
// determined (e.g. a resolved target without a self href).
func (l *Link) AbsoluteHref() string {
	href := l.TargetHref()
	if href == "" {
		return ""
	}
	if IsAbsoluteHref(href) {
		return href
	}
	if l.owner == nil || l.owner.SelfHref() == "" {
		return ""
	}
	return MakeAbsoluteHref(href, l.owner.SelfHref(), false)
}

// Href returns the href as it should be rendered on serialization:
// absolute, unless the link's type is [LinkRelative] and the owner has a
// self href to relativize against. Unresolved relative hrefs are returned
// as-is.
func (l *Link) Href() string {
	href := l.TargetHref()
	if href == "" {
		return ""
	}
	if l.Type == LinkRelative && l.owner != nil && l.owner.SelfHref() != "" {
		if IsAbsoluteHref(href) {
			return MakeRelativeHref(href, l.owner.SelfHref(), false)
		}
		return href
	}
	if !IsAbsoluteHref(href) {
		return l.AbsoluteHref()
	}
	return href
}

// Resolve fetches and constructs the link's target if it is still an href
// string, mutating the link in place. Relative hrefs are resolved against
// the owning object's self href; a relative target with no owner, or an
// owner without a self href, is a catalog-consistency error.
//
// If root is non-nil, root's resolved-object cache is consulted: an already
// cached object with the same id is substituted for the freshly parsed one,
// collapsing duplicate representations of the same logical object. The
// resolved object's root is set to root, and for "child"/"item" links the
// target's parent is set to the link's owner.
//
// Resolving an already-resolved link skips the I/O and re-applies only the
// root/parent side effects, so re-resolution is safe but wasteful.
func (l *Link) Resolve(ctx context.Context, root Object) (Object, error) {
	obj := l.target
	if obj != nil && root == nil {
		return obj, nil
	}

	if obj == nil {
		href := l.href
		if !IsAbsoluteHref(href) {
			if l.owner == nil {
				return nil, errors.New(errors.ErrCodeResolution,
					"cannot resolve relative href %q: link has no owner", href)
			}
			if l.owner.SelfHref() == "" {
				return nil, errors.New(errors.ErrCodeResolution,
					"cannot resolve relative href %q: owner %s has no self href", href, l.owner.ID())
			}
			href = MakeAbsoluteHref(href, l.owner.SelfHref(), false)
		}

		io := l.resolutionIO(root)
		if io == nil {
			return nil, errors.New(errors.ErrCodeResolution,
				"cannot resolve %q: no I/O collaborator attached to owner or root", href)
		}

		var err error
		obj, err = FromFile(ctx, href, io, nil)
		if err != nil {
			return nil, err
		}
	}

	if root != nil {
		if co, ok := root.(cacheOwner); ok {
			obj = co.resolvedCache().GetOrCache(obj)
		}
		obj.SetRoot(root)
	}
	if (l.Rel == RelChild || l.Rel == RelItem) && l.owner != nil {
		obj.SetParent(l.owner)
	}

	l.target = obj
	return obj, nil
}

// resolutionIO picks the I/O collaborator for this link: the owner's, then
// the root's, then the owner's resolved root's.
func (l *Link) resolutionIO(root Object) IO {
	if l.owner != nil {
		if io := l.owner.common().io; io != nil {
			return io
		}
	}
	if root != nil {
		if io := root.common().io; io != nil {
			return io
		}
	}
	if l.owner != nil {
		if rl := l.owner.GetSingleLink(RelRoot); rl != nil && rl.IsResolved() {
			return rl.Target().common().io
		}
	}
	return nil
}

// Clone returns a copy of the link. Resolved targets are shared, not
// copied; the owner is cleared and must be reassigned via [Object.AddLink]
// or [Link.SetOwner].
func (l *Link) Clone() *Link {
	clone := &Link{
		Rel:       l.Rel,
		MediaType: l.MediaType,
		Title:     l.Title,
		Type:      l.Type,
		href:      l.href,
		target:    l.target,
	}
	if l.ExtraFields != nil {
		clone.ExtraFields = make(map[string]any, len(l.ExtraFields))
		for k, v := range l.ExtraFields {
			clone.ExtraFields[k] = v
		}
	}
	return clone
}

// ToDict serializes the link to its JSON wire form.
func (l *Link) ToDict() map[string]any {
	d := make(map[string]any, 4+len(l.ExtraFields))
	d["rel"] = l.Rel
	if href := l.Href(); href != "" {
		d["href"] = href
	}
	if l.MediaType != "" {
		d["type"] = l.MediaType
	}
	if l.Title != "" {
		d["title"] = l.Title
	}
	for k, v := range l.ExtraFields {
		d[k] = v
	}
	return d
}

// linkFromDict builds a Link from its JSON wire form.
func linkFromDict(d map[string]any) *Link {
	l := &Link{Type: LinkAbsolute}
	for k, v := range d {
		switch k {
		case "rel":
			l.Rel, _ = v.(string)
		case "href":
			l.href, _ = v.(string)
		case "type":
			l.MediaType, _ = v.(string)
		case "title":
			l.Title, _ = v.(string)
		default:
			if l.ExtraFields == nil {
				l.ExtraFields = make(map[string]any)
			}
			l.ExtraFields[k] = v
		}
	}
	return l
}
