package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/tova/internal/config"
)

// Printing goes through the views, so set unification variables print as
// their contents. In test mode fresh ids are normalized (t?, u?, k?) the
// same way surface-level printers normalize inference variables, keeping
// golden output independent of allocation order.

func tvarString(v *TVar) string {
	if v.name != "" {
		return v.name
	}
	if config.IsTestMode {
		return "t?"
	}
	return fmt.Sprintf("t%d", int64(v.id))
}

func uvarString(u *UVar) string {
	if config.IsTestMode {
		return "u?"
	}
	return fmt.Sprintf("u%d", int64(u.id))
}

func (u *KVar) String() string {
	if u.link != nil {
		return u.link.String()
	}
	if config.IsTestMode {
		return "k?"
	}
	return fmt.Sprintf("k%d", int64(u.id))
}

func (t tUVar) String() string { return typeString(t) }
func (t tVar) String() string { return typeString(t) }

func (t tEffect) String() string { return typeString(t) }
func (t tEffrow) String() string { return typeString(t) }
func (t tPureArrow) String() string { return typeString(t) }
func (t tArrow) String() string { return typeString(t) }
func (t tHandler) String() string { return typeString(t) }
func (t tLabel) String() string { return typeString(t) }
func (t tApp) String() string { return typeString(t) }

func typeString(t Type) string {
	switch v := View(t).(type) {
	case VUVar:
		return uvarString(v.U)
	case VVar:
		return tvarString(v.V)
	case VEffect:
		return "{" + joinVars(v.Vars) + "}"
	case VEffrow:
		return rowString(t)
	case VPureArrow:
		return fmt.Sprintf("%s -> %s", schemeArgString(v.Arg), typeString(v.Ret))
	case VArrow:
		return fmt.Sprintf("%s ->%s %s", schemeArgString(v.Arg), rowString(v.Eff), typeString(v.Ret))
	case VHandler:
		return fmt.Sprintf("handler %s with %s, %s%s => %s%s",
			tvarString(v.Var), typeString(v.Cap),
			typeString(v.In), rowString(v.InEff),
			typeString(v.Out), rowString(v.OutEff))
	case VLabel:
		return fmt.Sprintf("label %s, %s%s",
			typeString(v.Eff), typeString(v.Delim), rowString(v.DelimEff))
	case VApp:
		return fmt.Sprintf("(%s %s)", typeString(v.Fn), typeString(v.Arg))
	default:
		return "<type>"
	}
}

func rowString(t Type) string {
	vars, end := rowParts(t)
	inner := joinVars(sortedVars(vars))
	switch e := end.(type) {
	case nil:
		return "[" + inner + "]"
	case tUVar:
		return rowStringOpen(inner, uvarString(e.u))
	case tVar:
		return rowStringOpen(inner, tvarString(e.v))
	default:
		return rowStringOpen(inner, typeString(end))
	}
}

func rowStringOpen(inner, end string) string {
	if inner == "" {
		return "[" + end + "]"
	}
	return "[" + inner + "|" + end + "]"
}

func joinVars(vs []*TVar) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = tvarString(v)
	}
	return strings.Join(parts, ",")
}

// schemeArgString prints an arrow argument: a monomorphic scheme prints as
// its bare body, wrapped when the body is itself an arrow.
func schemeArgString(sch Scheme) string {
	if sch.IsMonomorphic() {
		body := typeString(sch.Body)
		switch View(sch.Body).(type) {
		case VPureArrow, VArrow:
			return "(" + body + ")"
		}
		return body
	}
	return "(" + sch.String() + ")"
}

// String renders a scheme with its quantifiers and named parameters.
func (sch Scheme) String() string {
	var sb strings.Builder
	if len(sch.TArgs) > 0 {
		sb.WriteString("forall")
		for _, ta := range sch.TArgs {
			sb.WriteByte(' ')
			if _, anon := ta.Name.(TNAnon); anon {
				sb.WriteString(tvarString(ta.Var))
			} else {
				sb.WriteString(ta.Name.String())
			}
		}
		sb.WriteString(". ")
	}
	for _, ns := range sch.Named {
		fmt.Fprintf(&sb, "{%s : %s} -> ", ns.Name, ns.Scheme.String())
	}
	sb.WriteString(typeString(sch.Body))
	return sb.String()
}
