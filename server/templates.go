package main

import "html/template"

var TemplateRoot = template.New("")
var HeaderTemplate = template.Must(TemplateRoot.New("header").Parse(`
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>mkelem{{if .Title}}: {{.Title}}{{end}}</title>
<link rel="stylesheet" href="/assets/css/mkelem.css?h={{.CssHash}}"/>
</head>
<body>
<h1><a href="/">mkelem</a></h1>`))
var FooterTemplate = template.Must(TemplateRoot.New("footer").Parse(`
{{if .Entrypoint}}
<script src="/assets/js/wasm_exec.js"></script>
<script>
var Entrypoint = "{{.Entrypoint}}";
var go = new Go();
WebAssembly.instantiateStreaming(fetch("/assets/js/mkelem.wasm?h={{.JsHash}}"), go.importObject).then(function(result) {
	go.run(result.instance);
});
</script>
{{end}}
</body>
</html>
`))

var IndexTemplate = template.Must(TemplateRoot.New("index").Parse(`
{{template "header" .}}
<form method="POST" action="/create">
	<label>Tag name <input name="name" placeholder="div" required></label><br/>
	<label>Attributes, one key=value per line<br/><textarea name="attrs" rows="4" cols="60"></textarea></label><br/>
	<label>Content<br/><textarea name="content" rows="8" cols="60"></textarea></label><br/>
	<input type="submit" value="Create">
</form>
{{if .Snippets}}
<h2>Your snippets</h2>
<ul>
{{range .Snippets}}
<li><a href="/snippet?id={{.Id}}">&lt;{{.Spec.Name}}&gt;</a> {{.Created.Format "2006-01-02 15:04:05"}}</li>
{{end}}
</ul>
{{end}}
<h2>Recently created</h2>
<ul id="feed"></ul>
{{template "footer" .}}
`))

var SnippetTemplate = template.Must(TemplateRoot.New("snippet").Parse(`
{{template "header" .}}
<a href="/json?id={{.Snippet.Id}}">Download as JSON</a>
<h2>Markup</h2>
<pre class="markup">{{.Snippet.Markup}}</pre>
<h2>Preview</h2>
<iframe class="preview" sandbox srcdoc="{{.Snippet.Markup}}"></iframe>
<h2>Built in your browser</h2>
<div id="preview" data-id="{{.Snippet.Id}}"></div>
{{template "footer" .}}
`))
