package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/appcanvas-dev/appcanvas/internal/errors"
)

// fragmentFuncs are the helpers available inside fragment templates.
// "js" quotes a value as a JavaScript string literal, "raw" passes a
// value through for numeric or boolean props.
var fragmentFuncs = template.FuncMap{
	"js": func(v any) string {
		s := fmt.Sprint(v)
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		s = strings.ReplaceAll(s, "\n", `\n`)
		return `"` + s + `"`
	},
	"raw": func(v any) string {
		return fmt.Sprint(v)
	},
}

// fragments maps a kind id to the React Native JSX emitted for one
// placed instance. Param access goes through the "p" map so a template
// never fails on a missing key.
var fragments = map[string]string{
	"announcement-bar": `<AnnouncementBar
  text={{js (index .p "text")}}
  background={{js (index .p "background")}}
  textColor={{js (index .p "textColor")}}
  scrolling={ {{raw (index .p "scrolling")}} }
/>`,

	"banner": `<Banner
  title={{js (index .p "title")}}
  subtitle={{js (index .p "subtitle")}}
  image={{js (index .p "image")}}
  height={{js (index .p "height")}}
  overlayColor={{js (index .p "overlayColor")}}
  showButton={ {{raw (index .p "showButton")}} }
  buttonLabel={{js (index .p "buttonLabel")}}
  buttonLink={{js (index .p "buttonLink")}}
/>`,

	"image-slider": `<ImageSlider
  images={{js (index .p "images")}}
  autoPlay={ {{raw (index .p "autoPlay")}} }
  intervalSeconds={ {{raw (index .p "intervalSeconds")}} }
  aspectRatio={{js (index .p "aspectRatio")}}
/>`,

	"text-block": `<TextBlock
  content={{js (index .p "content")}}
  align={{js (index .p "align")}}
  fontSize={ {{raw (index .p "fontSize")}} }
/>`,

	"button-row": `<ButtonRow
  primaryLabel={{js (index .p "primaryLabel")}}
  primaryLink={{js (index .p "primaryLink")}}
  showSecondary={ {{raw (index .p "showSecondary")}} }
  secondaryLabel={{js (index .p "secondaryLabel")}}
  secondaryLink={{js (index .p "secondaryLink")}}
  accentColor={{js (index .p "accentColor")}}
/>`,

	"product-grid": `<ProductGrid
  title={{js (index .p "title")}}
  columns={ {{raw (index .p "columns")}} }
  maxItems={ {{raw (index .p "maxItems")}} }
  showPrice={ {{raw (index .p "showPrice")}} }
  showVendor={ {{raw (index .p "showVendor")}} }
  items={catalogItems}
/>`,

	"featured-collection": `<FeaturedCollection
  title={{js (index .p "title")}}
  collection={{js (index .p "collection")}}
  maxItems={ {{raw (index .p "maxItems")}} }
  showViewAll={ {{raw (index .p "showViewAll")}} }
  items={catalogItems}
/>`,

	"countdown": `<Countdown
  title={{js (index .p "title")}}
  endsAt={{js (index .p "endsAt")}}
  background={{js (index .p "background")}}
  hideWhenDone={ {{raw (index .p "hideWhenDone")}} }
/>`,

	"video": `<VideoEmbed
  url={{js (index .p "url")}}
  autoPlay={ {{raw (index .p "autoPlay")}} }
  loop={ {{raw (index .p "loop")}} }
/>`,

	"spacer": `<View style={{"{{"}} height: {{raw (index .p "height")}} {{"}}"}} />`,
}

// emptyContainer stands in for kinds the generator has no fragment
// for. The page keeps its slot count so positions stay meaningful.
const emptyContainer = `<View />`

// Fragment renders the JSX for one placed kind. A kind without a
// registered fragment degrades to an empty container rather than
// failing the whole generation run.
func Fragment(kindID string, params map[string]any) (string, error) {
	src, ok := fragments[kindID]
	if !ok {
		return emptyContainer, nil
	}

	tmpl, err := template.New(kindID).Funcs(fragmentFuncs).Parse(src)
	if err != nil {
		return "", errors.New(errors.CodeBadFragment).
			WithDetail(fmt.Sprintf("fragment %q failed to parse: %v", kindID, err)).
			Wrap(err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{"p": params}); err != nil {
		return "", errors.New(errors.CodeBadFragment).
			WithDetail(fmt.Sprintf("fragment %q failed to execute: %v", kindID, err)).
			Wrap(err)
	}
	return buf.String(), nil
}

// HasFragment reports whether a kind has a real fragment, as opposed
// to the empty-container degrade path.
func HasFragment(kindID string) bool {
	_, ok := fragments[kindID]
	return ok
}
