package server

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Title string
	Chart template.HTML
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      flex-direction: column;
      align-items: center;
      min-height: 100vh;
      padding: 2rem;
      background-color: #f8f9fa;
      color: #212529;
    }

    @media (prefers-color-scheme: dark) {
      body { background-color: #1a1a2e; color: #e0e0e0; }
    }

    h1 { margin-bottom: 1.5rem; font-size: 1.4rem; font-weight: 600; }

    .downloads { margin-top: 1rem; font-size: 0.9rem; }
    .downloads a { color: inherit; margin: 0 0.4rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>

  <div id="chart">{{.Chart}}</div>

  <div class="downloads">
    <a href="/chart.svg">SVG</a>
    <a href="/chart.png">PNG</a>
    <a href="/chart.pdf">PDF</a>
    <a href="/chart.json">JSON</a>
  </div>

  <script>
    (function() {
      var container = document.getElementById('chart');
      var current = '';

      function swap(url, key) {
        if (key === current) return;
        current = key;
        fetch(url).then(function(resp) {
          if (resp.ok) return resp.text();
        }).then(function(svg) {
          if (svg && key === current) container.innerHTML = svg;
        });
      }

      container.addEventListener('mouseover', function(e) {
        var slice = e.target.closest('.donut-slice');
        if (slice) {
          var label = slice.getAttribute('data-label');
          swap('/hover/slice/' + encodeURIComponent(label), 'slice:' + label);
          return;
        }
        if (e.target.closest('.donut-center')) {
          swap('/hover/center', 'center');
        }
      });

      container.addEventListener('mouseleave', function() {
        swap('/leave', '');
      });
    })();
  </script>
</body>
</html>
`
