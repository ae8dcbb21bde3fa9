package site

// pageTemplate is the html/template of the portfolio page.
// Detail overlays are plain anchors shown with CSS :target; no script is needed.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.User}} · repositories</title>
  <style>
` + cssContent + `
  </style>
</head>
<body>
  <header class="profile">
    <h1>{{.User}}</h1>
    {{- with .Stats}}
    <ul class="stats">
      <li><strong>{{.TotalStars}}</strong> stars</li>
      <li><strong>{{.PublicRepos}}</strong> repositories</li>
      <li><strong>{{.TotalForks}}</strong> forks</li>
      <li><strong>{{.MedianStars}}</strong> median stars</li>
      <li><strong>{{.Commits}}</strong> commits</li>
      <li><strong>{{.PullRequests}}</strong> pull requests</li>
      <li><strong>{{.Issues}}</strong> issues</li>
      <li><strong>{{.CurrentStreak}}</strong> day streak (longest {{.LongestStreak}})</li>
    </ul>
    {{- if .Languages}}
    <div class="langbar" role="img" aria-label="Language breakdown">
      {{- range .Languages}}
      <span class="seg c{{.Slot}}" style="width: {{.Percent}}%" title="{{.Name}} {{printf "%.1f" .Percent}}%"></span>
      {{- end}}
    </div>
    <ul class="legend">
      {{- range .Languages}}
      <li><span class="dot c{{.Slot}}"></span>{{.Name}} {{printf "%.1f" .Percent}}%</li>
      {{- end}}
    </ul>
    {{- end}}
    {{- end}}
    <p class="meta">Sorted by {{.SortLabel}}{{if .Query}} · filtered by “{{.Query}}”{{end}} · generated {{.Generated}}</p>
  </header>

  <main>
    {{- if .Placeholder}}
    <p class="placeholder">{{.Placeholder}}</p>
    {{- else}}
    <ul class="grid">
      {{- range .Cards}}
      <li class="card">
        <a class="card-link" href="#{{.Anchor}}">
          <span class="name">{{.Name}}</span>
          <span class="stars">★ {{.Stars}}</span>
          {{- if .Description}}
          <span class="desc">{{.Description}}</span>
          {{- end}}
          <span class="foot">
            {{- if .Language}}<span class="lang">{{.Language}}</span>{{end}}
            <span class="updated">Updated {{.Updated}}</span>
          </span>
        </a>
      </li>
      {{- end}}
    </ul>
    {{- end}}
  </main>

  {{- range .Cards}}
  {{- $anchor := .Anchor}}
  <div class="overlay" id="{{.Anchor}}">
    <a class="backdrop" href="#" aria-label="Close"></a>
    <section class="dialog" role="dialog" aria-labelledby="{{.Anchor}}-title">
      <a class="close" href="#" aria-label="Close">×</a>
      {{- with .Detail}}
      <h2 id="{{$anchor}}-title">{{.Name}} <span class="stars">★ {{.Stars}}</span></h2>
      {{- if .Description}}
      <p>{{.Description}}</p>
      {{- end}}
      <dl>
        <dt>Language</dt><dd>{{.Language}}</dd>
        <dt>Created</dt><dd>{{.Created}}</dd>
        <dt>Updated</dt><dd>{{.Updated}}</dd>
        <dt>Forks</dt><dd>{{.Forks}}</dd>
        <dt>Open issues</dt><dd>{{.OpenIssues}}</dd>
      </dl>
      <p class="links">
        <a href="{{.HomeURL}}">Repository</a>
        <a href="{{.IssuesURL}}">Issues</a>
      </p>
      {{- end}}
    </section>
  </div>
  {{- end}}
</body>
</html>
`

const cssContent = `    :root {
      --bg: #0d1117;
      --panel: #161b22;
      --border: #30363d;
      --text: #e6edf3;
      --muted: #8b949e;
      --accent: #ff5fd7;
      --star: #e3b341;
    }
    * { box-sizing: border-box; }
    body { margin: 0; padding: 2rem; background: var(--bg); color: var(--text); font: 15px/1.5 system-ui, sans-serif; }
    a { color: inherit; }
    h1 { margin: 0 0 .5rem; color: var(--accent); }
    .stats, .legend { display: flex; flex-wrap: wrap; gap: .25rem 1.25rem; list-style: none; padding: 0; margin: 0 0 1rem; color: var(--muted); }
    .stats strong { color: var(--text); }
    .langbar { display: flex; height: .6rem; max-width: 40rem; border-radius: .3rem; overflow: hidden; margin-bottom: .5rem; }
    .dot { display: inline-block; width: .6rem; height: .6rem; border-radius: 50%; margin-right: .35rem; }
    .meta { color: var(--muted); font-size: .85rem; }
    .c0 { background: #00afff; } .c1 { background: #ff5fd7; } .c2 { background: #ffaf00; }
    .c3 { background: #00d787; } .c4 { background: #af87ff; } .c5 { background: #ff5f5f; }
    .c6 { background: #ffff00; } .c7 { background: #00d7ff; } .c8 { background: #808080; }
    .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(18rem, 1fr)); gap: 1rem; list-style: none; padding: 0; }
    .card-link { display: grid; grid-template-columns: 1fr auto; gap: .35rem; height: 100%; padding: 1rem; text-decoration: none; background: var(--panel); border: 1px solid var(--border); border-radius: .5rem; }
    .card-link:hover { border-color: var(--accent); }
    .name { font-weight: 600; overflow: hidden; text-overflow: ellipsis; }
    .stars { color: var(--star); }
    .desc, .foot { grid-column: 1 / -1; color: var(--muted); }
    .lang { color: #00afff; margin-right: .5rem; }
    .placeholder { padding: 3rem; text-align: center; color: var(--muted); }
    .overlay { display: none; position: fixed; inset: 0; align-items: center; justify-content: center; }
    .overlay:target { display: flex; }
    .backdrop { position: absolute; inset: 0; background: rgba(0, 0, 0, .6); }
    .dialog { position: relative; width: min(36rem, 90vw); padding: 1.5rem 2rem; background: var(--panel); border: 1px solid var(--accent); border-radius: .75rem; }
    .close { position: absolute; top: .5rem; right: .9rem; font-size: 1.5rem; text-decoration: none; }
    dl { display: grid; grid-template-columns: max-content 1fr; gap: .25rem 1rem; }
    dt { color: var(--muted); }
    dd { margin: 0; }
    .links a { margin-right: 1rem; color: var(--accent); }`
