package server

// indexHTML is the single-page form UI. The API key stays in the page;
// it is sent once per generation and never stored server-side.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AI Research Assistant</title>
<style>
  body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
  input { width: 100%; padding: 0.5rem; margin: 0.25rem 0 1rem; box-sizing: border-box; }
  button { padding: 0.5rem 1.5rem; }
  #status { margin-top: 1rem; }
  #report { white-space: pre-wrap; border-top: 1px solid #ccc; margin-top: 1rem; padding-top: 1rem; }
</style>
</head>
<body>
<h1>AI Research Assistant</h1>
<p>Generates a literature-review report from arXiv papers. Enter your API key and a
research topic, then download the result as a PDF.</p>

<label for="key">Gemini API Key</label>
<input id="key" type="password" autocomplete="off">
<label for="topic">Research Topic</label>
<input id="topic" type="text">
<button id="generate">Generate Report</button>
<a id="download" style="display:none" download>Download PDF</a>
<div id="status"></div>
<div id="report"></div>

<script>
const btn = document.getElementById('generate');
btn.addEventListener('click', async () => {
  const key = document.getElementById('key').value;
  const topic = document.getElementById('topic').value;
  const status = document.getElementById('status');
  const link = document.getElementById('download');

  link.style.display = 'none';
  status.textContent = 'Generating report... this can take a few minutes.';
  btn.disabled = true;
  try {
    const resp = await fetch('/api/reports', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({api_key: key, topic: topic}),
    });
    const body = await resp.json();
    if (!resp.ok) {
      status.textContent = 'Error: ' + body.error;
      return;
    }
    status.textContent = 'Report generated (' + body.word_count + ' words).';
    document.getElementById('report').textContent = body.report;
    link.href = '/api/reports/' + body.id + '/pdf';
    link.setAttribute('download', body.pdf_name);
    link.style.display = 'inline';
  } catch (err) {
    status.textContent = 'Error: ' + err;
  } finally {
    btn.disabled = false;
  }
});
</script>
</body>
</html>
`
