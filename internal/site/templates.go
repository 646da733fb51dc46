package site

// pageTemplate is the html/template for each note page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <nav class="sidebar open" id="sidebar">
    <div class="sidebar-header">
      <h2 class="site-title"><a href="{{.BasePath}}index.html">{{.SiteTitle}}</a></h2>
    </div>
    <ul class="entries">
      {{- range .Entries}}
      <li class="entry{{if .Active}} active expanded{{end}}" data-id="{{.ID}}">
        <div class="entry-row">
          <button class="entry-toggle" aria-label="Toggle chapters"></button>
          <a class="entry-link" href="{{.Href}}">{{.Title}}</a>
        </div>
        {{- if .Chapters}}
        <ul class="chapters">
          {{- range .Chapters}}
          <li class="chapter level-{{.Level}}"><a class="chapter-link" data-slug="{{.Slug}}" href="#{{.Slug}}">{{.Title}}</a></li>
          {{- end}}
        </ul>
        {{- end}}
      </li>
      {{- end}}
    </ul>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content" id="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      <span class="top-title">{{.Title}}</span>
    </div>
    <article class="page-content">
      {{.Content}}
    </article>
    <footer class="page-nav">
      {{- if .Prev}}<a class="prev" href="{{.Prev.Href}}">&larr; {{.Prev.Title}}</a>{{else}}<span></span>{{end}}
      {{- if .Next}}<a class="next" href="{{.Next.Href}}">{{.Next.Title}} &rarr;</a>{{end}}
    </footer>
  </main>
  <script>window.NOTEBOOK = {{.Script}};</script>
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>`

// indexTemplate forwards to the first note, or says there is nothing to read.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.SiteTitle}}</title>
  {{- if .First}}
  <meta http-equiv="refresh" content="0; url={{.First}}">
  {{- end}}
</head>
<body>
  {{- if .First}}
  <p><a href="{{.First}}">Start reading</a></p>
  {{- else}}
  <p>No notes found.</p>
  {{- end}}
</body>
</html>`

// cssContent is the stylesheet shared by all pages.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #228be6;
  --accent-light: #e7f5ff;
  --code-bg: #f1f3f5;
  --sidebar-width: 280px;
  --content-max-width: 860px;
}

@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1b26;
    --bg-sidebar: #16171f;
    --text: #c0caf5;
    --text-muted: #565f89;
    --border: #292e42;
    --accent: #7aa2f7;
    --accent-light: #1a1b2e;
    --code-bg: #1f2030;
  }
}

*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
}

a { color: var(--accent); text-decoration: none; }

.sidebar {
  position: fixed; top: 0; left: 0; bottom: 0;
  width: var(--sidebar-width);
  overflow-y: auto;
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  padding: 1rem 0.75rem;
  transform: translateX(-100%);
  transition: transform 0.2s ease;
  z-index: 20;
}
.sidebar.open { transform: none; }
.sidebar-header { margin-bottom: 1rem; }
.site-title a { color: var(--text); font-size: 1.1rem; }

.entries, .chapters { list-style: none; }
.entry-row { display: flex; align-items: center; gap: 0.25rem; }
.entry-toggle {
  width: 1.25rem; height: 1.25rem;
  border: none; background: none; cursor: pointer; color: var(--text-muted);
}
.entry-toggle::before { content: "\25B8"; }
.entry.expanded > .entry-row .entry-toggle::before { content: "\25BE"; }
.entry-link { color: var(--text); flex: 1; }
.entry.active > .entry-row .entry-link { font-weight: 600; }
.chapters { display: none; margin: 0.25rem 0 0.5rem 1.5rem; font-size: 0.9rem; }
.entry.expanded .chapters { display: block; }
.chapter.level-3 { padding-left: 1rem; }
.chapter-link { color: var(--text-muted); display: block; padding: 0.1rem 0.4rem; border-radius: 4px; }
.chapter-link.active { color: var(--accent); background: var(--accent-light); }

.sidebar-overlay { display: none; }

.content { height: 100vh; overflow-y: auto; }
.top-bar {
  position: sticky; top: 0;
  display: flex; align-items: center; gap: 0.75rem;
  padding: 0.5rem 1rem;
  background: var(--bg);
  border-bottom: 1px solid var(--border);
}
.menu-toggle { border: none; background: none; color: var(--text); cursor: pointer; }
.top-title { font-weight: 600; }

.page-content { max-width: var(--content-max-width); margin: 0 auto; padding: 2rem 1.5rem; }
.page-content h1, .page-content h2, .page-content h3 { margin: 1.5em 0 0.5em; scroll-margin-top: 4rem; }
.page-content p, .page-content ul, .page-content ol, .page-content pre, .page-content table { margin-bottom: 1em; }
.page-content ul, .page-content ol { padding-left: 1.5rem; }
.page-content code { background: var(--code-bg); padding: 0.1em 0.3em; border-radius: 4px; font-size: 0.9em; }
.page-content pre { padding: 1rem; overflow-x: auto; border-radius: 6px; }
.page-content pre code { background: none; padding: 0; }
.page-content table { border-collapse: collapse; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 0.3rem 0.6rem; }

.page-nav {
  max-width: var(--content-max-width);
  margin: 0 auto; padding: 1rem 1.5rem 3rem;
  display: flex; justify-content: space-between;
  border-top: 1px solid var(--border);
}

@media (min-width: 1024px) {
  .sidebar.open + .sidebar-overlay + .content { margin-left: var(--sidebar-width); }
}

@media (max-width: 1023px) {
  .sidebar-overlay.visible {
    display: block; position: fixed; inset: 0;
    background: rgba(0,0,0,0.4); z-index: 10;
  }
}
`

// jsContent drives the sidebar and the scroll-spy. The engaged band comes
// from window.NOTEBOOK.rootMargin.
const jsContent = `(function() {
  "use strict";

  var cfg = window.NOTEBOOK || {};
  var breakpoint = cfg.breakpoint || 1024;
  var sidebar = document.getElementById("sidebar");
  var overlay = document.getElementById("sidebar-overlay");
  var content = document.getElementById("content");
  var links = document.querySelectorAll(".chapter-link");

  function mobile() { return window.innerWidth < breakpoint; }

  function setSidebar(open) {
    sidebar.classList.toggle("open", open);
    overlay.classList.toggle("visible", open && mobile());
  }

  // ===== Sidebar =====
  if (mobile()) setSidebar(false);
  document.getElementById("menu-toggle").addEventListener("click", function() {
    setSidebar(!sidebar.classList.contains("open"));
  });
  overlay.addEventListener("click", function() { setSidebar(false); });

  document.querySelectorAll(".entry-toggle").forEach(function(toggle) {
    toggle.addEventListener("click", function() {
      this.closest(".entry").classList.toggle("expanded");
    });
  });

  // ===== Active heading =====
  function setActive(slug) {
    links.forEach(function(link) {
      link.classList.toggle("active", link.getAttribute("data-slug") === slug);
    });
  }

  function scrollToSlug(slug) {
    var el = document.getElementById(slug);
    if (!el) return false;
    el.scrollIntoView({ behavior: "smooth", block: "start" });
    setActive(slug);
    return true;
  }

  links.forEach(function(link) {
    link.addEventListener("click", function(e) {
      e.preventDefault();
      var slug = this.getAttribute("data-slug");
      if (scrollToSlug(slug)) history.replaceState(null, "", "#" + slug);
      if (mobile()) setSidebar(false);
    });
  });

  if ("IntersectionObserver" in window) {
    var observer = new IntersectionObserver(function(entries) {
      var last = null;
      entries.forEach(function(entry) {
        if (entry.isIntersecting) last = entry.target.id;
      });
      if (last) setActive(last);
    }, { root: content, rootMargin: cfg.rootMargin || "-20% 0px -70% 0px" });

    document.querySelectorAll(".page-content h1[id], .page-content h2[id], .page-content h3[id]").forEach(function(h) {
      observer.observe(h);
    });
  }

  // ===== Live reload =====
  if (cfg.reload && "WebSocket" in window) {
    var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws/reload");
    ws.onmessage = function(e) {
      try {
        if (JSON.parse(e.data).type === "catalog") location.reload();
      } catch (err) {}
    };
  }

  // ===== Deep links =====
  if (location.hash.length > 1) {
    var fragment = decodeURIComponent(location.hash.slice(1));
    var target = document.getElementById(fragment) ? fragment : (cfg.aliases || {})[fragment.toLowerCase().trim().replace(/\s+/g, "-")];
    if (target) scrollToSlug(target);
  }
})();
`
