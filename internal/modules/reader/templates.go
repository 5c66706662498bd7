package reader

import "html/template"

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; font: 16px/1.7 -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; color: #222; background: #fff; }
    header { border-bottom: 2px solid #b71c1c; padding: 16px 24px; }
    header h1 { margin: 0; font-size: 26px; color: #b71c1c; }
    header p { margin: 4px 0 0; color: #666; font-size: 14px; }
    main { max-width: 960px; margin: 0 auto; padding: 24px; }
    .ticker { background: #b71c1c; color: #fff; padding: 8px 24px; font-size: 14px; }
    .ticker a { color: #fff; }
    .hero { margin-bottom: 32px; }
    .hero img { max-width: 100%; border-radius: 8px; }
    article h2 a { color: #222; text-decoration: none; }
    article { border-bottom: 1px solid #eee; padding: 16px 0; }
    article img { max-width: 100%; border-radius: 8px; }
    .meta { color: #888; font-size: 13px; }
    footer { border-top: 1px solid #eee; margin-top: 48px; padding: 16px 24px; color: #888; font-size: 13px; }
  </style>
</head>
<body>
  <header>
    <h1><a href="/" style="color:inherit;text-decoration:none">{{.SiteTitle}}</a></h1>
    {{if .Tagline}}<p>{{.Tagline}}</p>{{end}}
  </header>
  {{if .Ticker}}<div class="ticker">
    {{range .Ticker}}<span>&#9679; {{if .Link}}<a href="{{.Link}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</span>&nbsp;&nbsp;{{end}}
  </div>{{end}}
  <main>
    {{.Body}}
  </main>
  <footer>&copy; {{.Year}} {{.SiteTitle}}</footer>
</body>
</html>`))

var homeBodyTmpl = template.Must(template.New("home").Parse(`{{if .Hero}}<section class="hero">
  {{if .Hero.Image}}<img src="{{.Hero.Image.URL}}" alt="{{.Hero.Image.Alt}}" />{{end}}
  <h2>{{if .HeroHref}}<a href="{{.HeroHref}}">{{.Hero.Headline}}</a>{{else}}{{.Hero.Headline}}{{end}}</h2>
  {{if .Hero.Subheadline}}<p>{{.Hero.Subheadline}}</p>{{end}}
</section>{{end}}
{{range .Stories}}<article>
  <h2><a href="/story/{{.Slug}}">{{.Title}}</a></h2>
  {{if .MainImage}}<img src="{{.MainImage.URL}}" alt="{{.MainImage.Alt}}" />{{end}}
  <div class="meta">{{if .Author}}{{.Author}}{{end}}{{if .PublishedAt}} &middot; {{.PublishedAt.Format "Jan 2, 2006"}}{{end}}</div>
  {{.ExcerptHTML}}
</article>{{end}}`))

var storyBodyTmpl = template.Must(template.New("story").Parse(`<article>
  <h1>{{.Story.Title}}</h1>
  <div class="meta">{{if .Story.Author}}{{.Story.Author}}{{end}}{{if .Story.PublishedAt}} &middot; {{.Story.PublishedAt.Format "January 2, 2006"}}{{end}}</div>
  {{if .Story.MainImage}}<img src="{{.Story.MainImage.URL}}" alt="{{.Story.MainImage.Alt}}" />{{end}}
  {{.BodyHTML}}
</article>`))
