package web

const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="description" content="Create framed profile pictures.">
<title>Frame Generator</title>
<style>
body { font-family: system-ui, sans-serif; background: linear-gradient(#eff6ff, #faf5ff); margin: 0; padding: 3rem 1rem; }
main { max-width: 56rem; margin: 0 auto; display: grid; grid-template-columns: repeat(auto-fit, minmax(22rem, 1fr)); gap: 2rem; }
h1 { text-align: center; color: #6b21a8; }
section { background: #fff; border-radius: .75rem; padding: 1.5rem; box-shadow: 0 4px 12px rgba(0,0,0,.08); }
.frames { display: grid; grid-template-columns: 1fr 1fr; gap: .75rem; }
.frames label { border: 2px solid #e5e7eb; border-radius: .5rem; padding: .5rem; text-align: center; cursor: pointer; }
.frames input { display: none; }
.frames input:checked + span { font-weight: 600; }
.frames img { height: 6rem; object-fit: contain; display: block; margin: 0 auto; }
.hint { font-size: .75rem; color: #9ca3af; }
#preview { max-width: 100%; border: 1px solid #e5e7eb; border-radius: .5rem; }
#empty { background: #f3f4f6; height: 16rem; display: flex; align-items: center; justify-content: center; color: #6b7280; border-radius: .5rem; }
</style>
</head>
<body>
<h1>Profile Frame Generator</h1>
<main>
<section>
  <h2>Create Your Frame</h2>
  <label for="photo">Upload Profile Picture</label>
  <input id="photo" name="photo" type="file" accept="image/*">
  <p class="hint">PNG, JPG up to {{.UploadLimit}}</p>

  <label for="zoom">Zoom (<span id="zoomPct">{{.ZoomPercent}}</span>%)</label>
  <input id="zoom" type="range" min="{{.State.Zoom.Min}}" max="{{.State.Zoom.Max}}" step="{{.State.Zoom.Step}}" value="{{.State.Params.Zoom}}">

  <label for="size">Frame size</label>
  <input id="size" type="range" min="{{.State.FrameSize.Min}}" max="{{.State.FrameSize.Max}}" step="{{.State.FrameSize.Step}}" value="{{.State.Params.FrameSize}}">

  <p>Select Frame</p>
  <div class="frames">
  {{range .Frames}}
    <label style="background: {{.Swatch.Tint}}; border-color: {{.Swatch.Accent}}">
      <input type="radio" name="frame" value="{{.ID}}" {{if eq .ID $.State.Params.FrameID}}checked{{end}}>
      <span><img src="/api/frames/{{.ID}}/thumbnail" alt="{{.Name}}">{{.Name}}</span>
    </label>
  {{end}}
  </div>
</section>
<section>
  <h2>Preview &amp; Download</h2>
  <div id="empty" {{if .State.HasPhoto}}hidden{{end}}>Your generated frame will appear here</div>
  <img id="preview" alt="Generated frame preview" src="{{if .State.HasPhoto}}/api/preview?g={{.State.Generation}}{{end}}" {{if not .State.HasPhoto}}hidden{{end}}>
  <p><a id="download" href="/api/download" {{if not .State.HasPhoto}}hidden{{end}}>Download Frame</a></p>
</section>
</main>
<script>
const show = (st) => {
  document.getElementById('zoom').value = st.params.zoom;
  document.getElementById('size').value = st.params.frame_size;
  document.getElementById('zoomPct').textContent = Math.round(st.params.zoom * 100);
  if (!st.has_photo) return;
  document.getElementById('empty').hidden = true;
  document.getElementById('download').hidden = false;
  const img = document.getElementById('preview');
  img.hidden = false;
  img.src = '/api/preview?g=' + st.generation;
};
const put = (body) => fetch('/api/params', {method: 'PUT', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(body)})
  .then((r) => r.ok ? r.json().then(show) : null);
document.getElementById('photo').addEventListener('change', (e) => {
  const file = e.target.files[0];
  if (!file) return;
  const form = new FormData();
  form.append('photo', file);
  fetch('/api/photo', {method: 'POST', body: form}).then((r) => r.ok ? r.json().then(show) : null);
});
document.getElementById('zoom').addEventListener('input', (e) => put({zoom: parseFloat(e.target.value)}));
document.getElementById('size').addEventListener('input', (e) => put({frame_size: parseFloat(e.target.value)}));
document.querySelectorAll('input[name=frame]').forEach((el) => el.addEventListener('change', () => put({frame_id: el.value})));
</script>
</body>
</html>
`
