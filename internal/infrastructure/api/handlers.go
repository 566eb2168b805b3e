package api

import (
	"net/http"
)

// HandleIndex serves the scanner dashboard. The page is a thin
// collaborator: camera access, the radar chart, and image decoding stay
// in the browser while every decision runs server-side.
func (h *ScanHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
<title>CYBER-CAT // 賽博貓譜</title>
<script src="https://cdn.tailwindcss.com"></script>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<style>
body { font-family: 'Courier New', monospace; background:#05060f; color:#9efcff; }
.neon-border { border:1px solid #0ff; box-shadow:0 0 12px rgba(0,255,255,.35), inset 0 0 8px rgba(0,255,255,.15); }
.neon-text { text-shadow:0 0 8px #0ff; }
.alert-text { color:#ff2d55; text-shadow:0 0 10px #ff2d55; }
.scanline { position:absolute; inset:0; background:linear-gradient(180deg, transparent 0%, rgba(0,255,255,.35) 50%, transparent 100%); height:30%; animation:scan 1.1s linear infinite; pointer-events:none; }
@keyframes scan { 0%{top:-30%} 100%{top:100%} }
.flash { position:absolute; inset:0; background:#fff; opacity:0; pointer-events:none; }
.flash.on { animation:flash .25s ease-out; }
@keyframes flash { 0%{opacity:.9} 100%{opacity:0} }
.loader { border:6px solid rgba(0,255,255,.15); border-top:6px solid #0ff; border-radius:50%; width:48px; height:48px; animation:spin 1s linear infinite; }
@keyframes spin { 0%{transform:rotate(0)} 100%{transform:rotate(360deg)} }
video.mirror { transform:scaleX(-1); }
.btn { border:1px solid #0ff; padding:.5rem 1rem; letter-spacing:.15em; }
.btn:hover:not(:disabled) { background:rgba(0,255,255,.15); }
.btn:disabled { opacity:.35; cursor:not-allowed; }
</style>
</head>
<body class="min-h-screen p-4 md:p-8">
<div class="max-w-5xl mx-auto">
<header class="text-center mb-6">
<h1 class="text-3xl md:text-4xl font-bold neon-text">CYBER-CAT SCANNER</h1>
<p id="status" class="mt-2 text-sm tracking-widest text-cyan-300">SYSTEM STANDBY // 待機中</p>
</header>

<main class="grid md:grid-cols-2 gap-6">
<!-- capture panel -->
<section class="neon-border rounded-lg p-4 relative overflow-hidden">
<div class="relative aspect-square bg-black rounded overflow-hidden">
<video id="video" class="mirror w-full h-full object-cover hidden" autoplay playsinline></video>
<img id="still" class="w-full h-full object-cover hidden" alt="captured frame"/>
<div id="placeholder" class="absolute inset-0 flex items-center justify-center text-cyan-700 text-6xl">🐾</div>
<div id="scanline" class="scanline hidden"></div>
<div id="flash" class="flash"></div>
</div>
<canvas id="snap-canvas" class="hidden"></canvas>
<div class="flex flex-wrap gap-3 mt-4 justify-center">
<button id="camera-btn" class="btn rounded">ACTIVATE CAMERA</button>
<label class="btn rounded cursor-pointer">UPLOAD<input id="file-input" type="file" accept="image/*" class="hidden"></label>
<button id="scan-btn" class="btn rounded font-bold" disabled>SCAN TARGET</button>
<button id="reset-btn" class="btn rounded">RESET</button>
</div>
</section>

<!-- result panel -->
<section id="result-card" class="neon-border rounded-lg p-4 hidden">
<div class="flex items-center gap-3 mb-2">
<span id="result-emoji" class="text-4xl"></span>
<div>
<h2 id="result-title" class="text-2xl font-bold neon-text"></h2>
<p id="result-tier" class="text-sm tracking-widest"></p>
</div>
</div>
<p id="result-desc" class="text-sm leading-relaxed text-cyan-200 mb-4"></p>
<div class="aspect-square max-w-xs mx-auto"><canvas id="radar"></canvas></div>
<div id="image-box" class="mt-4 hidden">
<div id="image-loader" class="flex justify-center py-8"><div class="loader"></div></div>
<img id="portrait" class="w-full rounded hidden" alt="generated portrait"/>
</div>
</section>
</main>
</div>

<script>
let stream = null;
let isProcessing = false;
let chartInstance = null;
let lastAnalysisData = null;
let pendingFile = null;

const $ = (id) => document.getElementById(id);

function showStatus(message, severityClass) {
  const el = $('status');
  el.textContent = message;
  el.className = 'mt-2 text-sm tracking-widest ' + (severityClass || 'text-cyan-300');
}

$('camera-btn').addEventListener('click', async () => {
  stopStream();
  try {
    stream = await navigator.mediaDevices.getUserMedia({ video: { facingMode: 'user' } });
    $('video').srcObject = stream;
    await new Promise((resolve) => { $('video').onloadedmetadata = resolve; });
    $('video').classList.remove('hidden');
    $('still').classList.add('hidden');
    $('placeholder').classList.add('hidden');
    pendingFile = null;
    $('scan-btn').disabled = false;
    showStatus('CAMERA ONLINE // 鏡頭已連線');
  } catch (err) {
    stream = null;
    showStatus('CAMERA OFFLINE // 無法取得攝影機', 'alert-text');
  }
});

$('file-input').addEventListener('change', (e) => {
  const file = e.target.files[0];
  if (!file) return;
  stopStream();
  pendingFile = file;
  $('still').src = URL.createObjectURL(file);
  $('still').classList.remove('hidden');
  $('video').classList.add('hidden');
  $('placeholder').classList.add('hidden');
  $('scan-btn').disabled = false;
  showStatus('FILE LOADED // 影像已載入');
});

$('scan-btn').addEventListener('click', async () => {
  if (isProcessing) return;
  isProcessing = true;
  $('scan-btn').disabled = true;
  $('flash').classList.add('on');
  setTimeout(() => $('flash').classList.remove('on'), 300);
  $('scanline').classList.remove('hidden');
  showStatus('ANALYZING TARGET // 分析中…');

  try {
    const form = new FormData();
    if (stream) {
      form.append('frame', await snapBlob(), 'frame.jpg');
      form.append('source', 'camera');
    } else if (pendingFile) {
      form.append('frame', pendingFile, pendingFile.name);
      form.append('source', 'file');
    } else {
      showStatus('NO TARGET // 請先取得影像', 'alert-text');
      return;
    }
    form.append('streamActive', stream ? 'true' : 'false');

    const res = await fetch('/api/scan', { method: 'POST', body: form });
    const body = await res.json();
    if (!body.success) {
      showStatus(body.error, 'alert-text');
      return;
    }
    renderAnalysis(body);
    if (body.image) {
      renderImage(body.image);
      showStatus('SCAN COMPLETE // 掃描完成');
    } else {
      $('image-box').classList.add('hidden');
      showStatus(body.imageError || 'RENDER FAILED // 肖像生成失敗', 'alert-text');
    }
  } catch (err) {
    showStatus('UPLINK FAILURE // 遠端服務異常', 'alert-text');
  } finally {
    isProcessing = false;
    $('scanline').classList.add('hidden');
    $('scan-btn').disabled = false;
  }
});

$('reset-btn').addEventListener('click', async () => {
  const res = await fetch('/api/reset', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ full: true, streamActive: !!stream }),
  });
  const body = await res.json();
  if (!res.ok) {
    showStatus(body.error || 'SCAN IN PROGRESS // 掃描中，請稍候', 'alert-text');
    return;
  }
  lastAnalysisData = null;
  $('result-card').classList.add('hidden');
  $('image-box').classList.add('hidden');
  $('still').classList.add('hidden');
  if (body.resumeCamera && stream) {
    $('video').classList.remove('hidden');
    $('placeholder').classList.add('hidden');
    $('scan-btn').disabled = false;
  } else {
    stopStream();
    $('video').classList.add('hidden');
    $('placeholder').classList.remove('hidden');
    $('scan-btn').disabled = true;
  }
  showStatus('SYSTEM STANDBY // 待機中');
});

function snapBlob() {
  const video = $('video');
  const canvas = $('snap-canvas');
  canvas.width = video.videoWidth;
  canvas.height = video.videoHeight;
  canvas.getContext('2d').drawImage(video, 0, 0);
  return new Promise((resolve) => canvas.toBlob(resolve, 'image/jpeg', 0.8));
}

function renderAnalysis(body) {
  lastAnalysisData = body.analysis;
  $('result-card').classList.remove('hidden');
  $('result-emoji').textContent = body.analysis.emoji;
  $('result-title').textContent = body.analysis.title;
  $('result-desc').textContent = body.analysis.description;
  const tierEl = $('result-tier');
  tierEl.textContent = 'THREAT: ' + body.threatTier;
  tierEl.className = 'text-sm tracking-widest ' + (body.alert ? 'alert-text' : 'text-cyan-300');
  drawRadar(body.radar);
}

function drawRadar(radar) {
  if (chartInstance) chartInstance.destroy();
  chartInstance = new Chart($('radar'), {
    type: 'radar',
    data: {
      labels: radar.labels,
      datasets: [{
        data: radar.values,
        backgroundColor: 'rgba(0,255,255,0.2)',
        borderColor: '#0ff',
        pointBackgroundColor: '#0ff',
      }],
    },
    options: {
      plugins: { legend: { display: false } },
      scales: { r: { min: 0, max: 100, grid: { color: 'rgba(0,255,255,.2)' }, angleLines: { color: 'rgba(0,255,255,.2)' }, pointLabels: { color: '#9efcff' }, ticks: { display: false } } },
    },
  });
}

function renderImage(image) {
  $('image-box').classList.remove('hidden');
  $('image-loader').classList.remove('hidden');
  const portrait = $('portrait');
  portrait.classList.add('hidden');
  portrait.onload = () => {
    $('image-loader').classList.add('hidden');
    portrait.classList.remove('hidden');
  };
  portrait.src = 'data:' + image.type + ';base64,' + image.data;
}

function stopStream() {
  if (stream) {
    stream.getTracks().forEach((t) => t.stop());
    stream = null;
  }
  $('video').srcObject = null;
}

// Restore the last scan after a reload, if the server remembers one.
fetch('/api/scans/latest').then((res) => {
  if (!res.ok) return null;
  return res.json();
}).then((body) => {
  if (body && body.success) {
    renderAnalysis(body);
    if (body.image) renderImage(body.image);
  }
}).catch(() => {});
</script>
</body>
</html>
`
