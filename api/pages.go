package api

import (
	"html/template"
)

// productPageTemplate product landing page, rendered from a models.Herb
var productPageTemplate = template.Must(template.New("product").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Name}}</title>
<style>
body{font-family:sans-serif;margin:24px}
.card{max-width:640px;border:1px solid #eee;border-radius:12px;padding:20px;box-shadow:0 2px 8px rgba(0,0,0,0.06)}
.row{margin:6px 0}
code,a{color:#0a6;word-break:break-all}
</style>
</head>
<body>
<div class="card">
<h1>{{.Name}}</h1>
<div class="row"><strong>Farmer:</strong> {{.Farmer}}</div>
<div class="row"><strong>Location:</strong> {{.Location}}</div>
<div class="row"><strong>ID:</strong> <code>{{.ID}}</code></div>
<div class="row"><img alt="QR" src="/qr/{{.ID}}" style="margin-top:12px;max-width:240px"/></div>
<hr/>
<div class="row"><a href="/p/{{.ID}}">View JSON</a></div>
</div>
</body>
</html>
`))

const scanPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Scan Product</title>
<style>
body{font-family:sans-serif;margin:24px}
.card{max-width:640px;border:1px solid #eee;border-radius:12px;padding:20px;box-shadow:0 2px 8px rgba(0,0,0,0.06)}
textarea{width:100%;height:120px}
pre{background:#f7f7f7;padding:12px;border-radius:8px;white-space:pre-wrap;word-break:break-all}
</style>
</head>
<body>
<div class="card">
<h1>Scan Product</h1>
<p>Paste scanned QR text (URL/JSON/id) below. The page will POST to /scan and show the product.</p>
<textarea id="scan" placeholder="Paste scanned content here..."></textarea><br/>
<button id="btn">Submit</button>
<pre id="out"></pre>
</div>
<script>
const btn = document.getElementById('btn');
const area = document.getElementById('scan');
const out = document.getElementById('out');
btn.onclick = async () => {
  out.textContent = 'Loading...';
  try {
    const res = await fetch('/scan', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({data: area.value})
    });
    const text = await res.text();
    try {
      out.textContent = JSON.stringify(JSON.parse(text), null, 2);
    } catch (e) {
      out.textContent = text;
    }
  } catch (e) {
    out.textContent = String(e);
  }
};
</script>
</body>
</html>
`
