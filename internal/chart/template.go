package chart

// rankingsPage is the published page. Everything interpolated into it is
// generated by this package, so a plain text template is sufficient.
const rankingsPage = `<!DOCTYPE html>
<html lang="en" data-theme="dark" data-lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <script src="https://cdn.plot.ly/plotly-2.32.0.min.js" charset="utf-8"></script>
  <style>
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

    :root, [data-theme="dark"] {
      --bg-body:      #0d1117;
      --bg-toolbar:   #161b22;
      --bg-input:     #0d1117;
      --border:       #30363d;
      --text:         #c9d1d9;
      --text-heading: #e6edf3;
      --text-dim:     #8b949e;
      --text-link:    #58a6ff;
      --bg-table-th:  #21262d;
      --bg-table-hover: #1c2128;
      --border-table: #21262d;
      --btn-sec-bg:   #21262d;
      --btn-sec-hover:#30363d;
    }

    [data-theme="light"] {
      --bg-body:      #ffffff;
      --bg-toolbar:   #f6f8fa;
      --bg-input:     #ffffff;
      --border:       #d0d7de;
      --text:         #1f2328;
      --text-heading: #1f2328;
      --text-dim:     #656d76;
      --text-link:    #0969da;
      --bg-table-th:  #f6f8fa;
      --bg-table-hover: #f0f3f6;
      --border-table: #d8dee4;
      --btn-sec-bg:   #f3f4f6;
      --btn-sec-hover:#e5e7eb;
    }

    body {
      background: var(--bg-body);
      color: var(--text);
      font-family: 'Segoe UI', -apple-system, BlinkMacSystemFont, sans-serif;
      min-height: 100vh;
      transition: background 0.25s, color 0.25s;
    }
    .toolbar {
      display: flex;
      align-items: center;
      gap: 10px;
      padding: 14px 24px;
      background: var(--bg-toolbar);
      border-bottom: 1px solid var(--border);
      flex-wrap: wrap;
      transition: background 0.25s;
    }
    .toolbar h1 {
      font-size: 18px;
      font-weight: 600;
      color: var(--text-heading);
      margin-right: auto;
      white-space: nowrap;
    }
    .toolbar input[type="text"] {
      background: var(--bg-input);
      border: 1px solid var(--border);
      border-radius: 6px;
      color: var(--text);
      padding: 6px 12px;
      font-size: 14px;
      width: 220px;
      outline: none;
      transition: border-color 0.2s, background 0.25s, color 0.25s;
    }
    .toolbar input[type="text"]:focus {
      border-color: var(--text-link);
    }
    .toolbar input[type="text"]::placeholder {
      color: var(--text-dim);
    }
    .btn {
      padding: 6px 14px;
      font-size: 13px;
      font-weight: 500;
      border: 1px solid var(--border);
      border-radius: 6px;
      cursor: pointer;
      transition: background 0.15s, border-color 0.15s, color 0.15s;
    }
    .btn-primary {
      background: #238636;
      color: #ffffff;
      border-color: #238636;
    }
    .btn-primary:hover { background: #2ea043; }
    .btn-secondary {
      background: var(--btn-sec-bg);
      color: var(--text);
    }
    .btn-secondary:hover { background: var(--btn-sec-hover); }
    .btn-toggle {
      background: var(--btn-sec-bg);
      color: var(--text);
      font-size: 15px;
      padding: 5px 10px;
      line-height: 1;
    }
    .btn-toggle:hover { background: var(--btn-sec-hover); }
    .status-bar {
      display: flex;
      align-items: center;
      gap: 16px;
      padding: 6px 24px;
      font-size: 12px;
      color: var(--text-dim);
      background: var(--bg-toolbar);
      border-bottom: 1px solid var(--border);
      transition: background 0.25s, color 0.25s;
    }
    #chart-container {
      padding: 8px 16px;
    }
    #info-panel {
      padding: 0 24px 12px 24px;
    }
    #info-panel:empty { display: none; }
    #info-panel table {
      border-collapse: collapse;
      width: auto;
      min-width: 520px;
      margin-top: 8px;
      font-size: 13px;
    }
    #info-panel th {
      background: var(--bg-table-th);
      color: var(--text-heading);
      padding: 6px 14px;
      text-align: left;
      border-bottom: 2px solid var(--border);
      font-weight: 600;
      white-space: nowrap;
    }
    #info-panel td {
      padding: 5px 14px;
      border-bottom: 1px solid var(--border-table);
      color: var(--text);
      white-space: nowrap;
    }
    #info-panel tr:hover td {
      background: var(--bg-table-hover);
    }
  </style>
</head>
<body>
  <div class="toolbar">
    <h1>{{.Title}}</h1>
    <input type="text" id="team-input" placeholder="e.g.  SJTU1/SJTU2" />
    <button class="btn btn-primary" id="btn-search" data-i18n="search">&#128269; Highlight</button>
    <button class="btn btn-secondary" id="btn-clear" data-i18n="clear">&#10005; Clear</button>
    <button class="btn btn-toggle" id="btn-theme" title="Toggle light/dark mode">&#9728;&#65039;</button>
    <button class="btn btn-toggle" id="btn-lang" title="Switch language">&#20013;</button>
  </div>
  <div class="status-bar">
    <span id="update-label" data-i18n="updated">Last updated: {{.UpdateTime}} (UTC+8) &middot; Auto-refresh every 30 min</span>
  </div>
  <div id="info-panel"></div>
  <div id="chart-container">
    <div id="vurc-plot"></div>
  </div>

  <script>
  var PLOT = {{.Plot}};
  var TEAM_DATA = {{.TeamData}};
  var UPDATE_TIME = '{{.UpdateTime}}';
  var YEARS = '{{.Years}}';

  Plotly.newPlot('vurc-plot', PLOT.data, PLOT.layout, {responsive: true, displaylogo: false});

  (function() {
    var graphDiv  = document.getElementById('vurc-plot');
    var input     = document.getElementById('team-input');
    var btnSearch = document.getElementById('btn-search');
    var btnClear  = document.getElementById('btn-clear');
    var btnTheme  = document.getElementById('btn-theme');
    var btnLang   = document.getElementById('btn-lang');
    var infoPanel = document.getElementById('info-panel');
    var updateLabel = document.getElementById('update-label');

    var i18n = {
      en: {
        search:   '🔍 Highlight',
        clear:    '✕ Clear',
        updated:  'Last updated: ' + UPDATE_TIME + ' (UTC+8) · Auto-refresh every 30 min',
        placeholder: 'e.g.  SJTU1/SJTU2',
        chartTitle: 'Elo vs Strength of Schedule vs Skills Scores (Color = Driver, Size = Programming) ---VURC--- ' + YEARS,
        xTitle:     'Strength of Schedule',
        yTitle:     'Elo',
        cbTitle:    'Driver Skills',
        thTeam:     'Team',
        thElo:      'Elo',
        thSos:      'SoS',
        thDriver:   'Driver Skills',
        thProg:     'Prog Skills',
        langBtn:    '中'
      },
      zh: {
        search:   '🔍 搜索',
        clear:    '✕ 清除',
        updated:  '最后更新时间：' + UPDATE_TIME + '（北京时间）· 每 30 分钟刷新一次',
        placeholder: '例如  SJTU1/SJTU2',
        chartTitle: 'Elo vs 赛程强度 vs 技能赛分数（颜色 = 手动，大小 = 自动）---VURC--- ' + YEARS,
        xTitle:     '赛程强度',
        yTitle:     'Elo',
        cbTitle:    '技能赛得分',
        thTeam:     '队伍',
        thElo:      'Elo',
        thSos:      '赛程强度',
        thDriver:   '手动技能分',
        thProg:     '自动技能分',
        langBtn:    'EN'
      }
    };

    function currentLang() {
      return document.documentElement.getAttribute('data-lang') || 'en';
    }

    function applyLang(lang) {
      var t = i18n[lang];
      btnSearch.textContent = t.search;
      btnClear.textContent  = t.clear;
      updateLabel.textContent = t.updated;
      input.placeholder     = t.placeholder;
      btnLang.textContent   = t.langBtn;
      document.documentElement.setAttribute('data-lang', lang);

      if (graphDiv && graphDiv.data) {
        Plotly.relayout(graphDiv, {
          'title.text':       t.chartTitle,
          'xaxis.title.text': t.xTitle,
          'yaxis.title.text': t.yTitle
        });
        for (var ti = 0; ti < graphDiv.data.length; ti++) {
          if (graphDiv.data[ti].marker && graphDiv.data[ti].marker.colorbar) {
            Plotly.restyle(graphDiv, {'marker.colorbar.title.text': t.cbTitle}, [ti]);
          }
        }
      }

      if (lastMatchedRows && lastMatchedRows.length) {
        renderInfoTable(lastMatchedRows);
      }
    }

    btnLang.addEventListener('click', function() {
      var next = currentLang() === 'en' ? 'zh' : 'en';
      applyLang(next);
    });

    var themes = {
      dark: {
        paper_bgcolor: '#0d1117',
        plot_bgcolor:  '#161b22',
        gridcolor:     '#21262d',
        fontcolor:     '#c9d1d9',
        titlecolor:    '#e6edf3',
        tickcolor:     '#8b949e',
        textcolor:     '#c9d1d9',
        textcolorDim:  '#8b949e',
        cbTitleColor:  '#c9d1d9',
        cbTickColor:   '#8b949e',
        icon:          '☀️'
      },
      light: {
        paper_bgcolor: '#ffffff',
        plot_bgcolor:  '#f6f8fa',
        gridcolor:     '#d0d7de',
        fontcolor:     '#1f2328',
        titlecolor:    '#1f2328',
        tickcolor:     '#656d76',
        textcolor:     '#24292f',
        textcolorDim:  '#656d76',
        cbTitleColor:  '#1f2328',
        cbTickColor:   '#656d76',
        icon:          '🌙'
      }
    };

    function currentTheme() {
      return document.documentElement.getAttribute('data-theme') || 'dark';
    }

    function applyPlotlyTheme(t) {
      if (!graphDiv || !graphDiv.data) return;
      var s = themes[t];
      Plotly.relayout(graphDiv, {
        'paper_bgcolor': s.paper_bgcolor,
        'plot_bgcolor':  s.plot_bgcolor,
        'xaxis.gridcolor': s.gridcolor,
        'yaxis.gridcolor': s.gridcolor,
        'xaxis.tickfont.color': s.tickcolor,
        'yaxis.tickfont.color': s.tickcolor,
        'xaxis.title.font.color': s.fontcolor,
        'yaxis.title.font.color': s.fontcolor,
        'title.font.color': s.titlecolor,
        'font.color': s.fontcolor
      });
      for (var ti = 0; ti < graphDiv.data.length; ti++) {
        var update = {
          'textfont.color': ti === 0 ? s.textcolor : s.textcolorDim
        };
        if (graphDiv.data[ti].marker && graphDiv.data[ti].marker.colorbar) {
          update['marker.colorbar.title.font.color'] = s.cbTitleColor;
          update['marker.colorbar.tickfont.color']   = s.cbTickColor;
        }
        Plotly.restyle(graphDiv, update, [ti]);
      }
    }

    btnTheme.addEventListener('click', function() {
      var next = currentTheme() === 'dark' ? 'light' : 'dark';
      document.documentElement.setAttribute('data-theme', next);
      btnTheme.textContent = themes[next].icon;
      applyPlotlyTheme(next);
    });

    var lastMatchedRows = [];

    function parseQueries(raw) {
      return raw.split('/').map(function(s) { return s.trim().toUpperCase(); })
                .filter(function(s) { return s.length > 0; });
    }

    function isMatch(name, queries) {
      for (var q = 0; q < queries.length; q++) {
        if (name.indexOf(queries[q]) !== -1) return true;
      }
      return false;
    }

    function highlightTeam() {
      var queries = parseQueries(input.value);
      if (!queries.length || !graphDiv || !graphDiv.data) return;

      var matchedNames = {};

      var nTraces = graphDiv.data.length;
      for (var ti = 0; ti < nTraces; ti++) {
        var trace = graphDiv.data[ti];
        var texts = trace.text || [];
        var n     = texts.length;
        var widths    = new Array(n);
        var colors    = new Array(n);
        var opacities = new Array(n);

        for (var i = 0; i < n; i++) {
          var tname = (texts[i] || '').toUpperCase();
          if (isMatch(tname, queries)) {
            widths[i]    = 4;
            colors[i]    = '#FF3333';
            opacities[i] = 1.0;
            matchedNames[tname] = true;
          } else {
            widths[i]    = 0.5;
            colors[i]    = currentTheme() === 'dark' ? 'rgba(255,255,255,0.15)' : 'rgba(0,0,0,0.1)';
            opacities[i] = 0.35;
          }
        }

        Plotly.restyle(graphDiv, {
          'marker.line.width': [widths],
          'marker.line.color': [colors],
          'marker.opacity':    [opacities]
        }, [ti]);
      }

      var matchedRows = [];
      var keys = Object.keys(matchedNames);
      for (var k = 0; k < keys.length; k++) {
        var info = TEAM_DATA[keys[k]];
        if (info) matchedRows.push(info);
      }
      lastMatchedRows = matchedRows;
      renderInfoTable(matchedRows);
    }

    function renderInfoTable(rows) {
      if (!rows.length) {
        infoPanel.innerHTML = '';
        return;
      }
      var t = i18n[currentLang()];
      rows.sort(function(a, b) { return (b.elo || 0) - (a.elo || 0); });
      var html = '<table><thead><tr>'
        + '<th>' + t.thTeam + '</th><th>' + t.thElo + '</th><th>' + t.thSos
        + '</th><th>' + t.thDriver + '</th><th>' + t.thProg + '</th>'
        + '</tr></thead><tbody>';
      for (var i = 0; i < rows.length; i++) {
        var r = rows[i];
        html += '<tr>'
          + '<td style="font-weight:600;color:var(--text-link)">' + r.team + '</td>'
          + '<td>' + r.elo.toFixed(1) + '</td>'
          + '<td>' + r.sos.toFixed(4) + '</td>'
          + '<td>' + r.driver + '</td>'
          + '<td>' + r.prog + '</td>'
          + '</tr>';
      }
      html += '</tbody></table>';
      infoPanel.innerHTML = html;
    }

    function clearHighlight() {
      if (!graphDiv || !graphDiv.data) return;
      var isDark = currentTheme() === 'dark';
      var nTraces = graphDiv.data.length;
      for (var ti = 0; ti < nTraces; ti++) {
        var trace = graphDiv.data[ti];
        var n = (trace.text || []).length;
        var widths    = new Array(n);
        var colors    = new Array(n);
        var opacities = new Array(n);
        for (var i = 0; i < n; i++) {
          widths[i]    = 0.5;
          colors[i]    = ti === 0
            ? (isDark ? 'rgba(255,255,255,0.25)' : 'rgba(0,0,0,0.15)')
            : (isDark ? 'rgba(255,255,255,0.1)'  : 'rgba(0,0,0,0.08)');
          opacities[i] = ti === 0 ? 0.82 : 0.7;
        }
        Plotly.restyle(graphDiv, {
          'marker.line.width': [widths],
          'marker.line.color': [colors],
          'marker.opacity':    [opacities]
        }, [ti]);
      }
      input.value = '';
      infoPanel.innerHTML = '';
      lastMatchedRows = [];
    }

    btnSearch.addEventListener('click', highlightTeam);
    btnClear.addEventListener('click', clearHighlight);
    input.addEventListener('keydown', function(e) {
      if (e.key === 'Enter') highlightTeam();
    });
  })();
  </script>

  <footer style="
    display:flex; align-items:center; justify-content:center; gap:8px;
    padding:14px 24px;
    font-size:13px;
    color:var(--text-dim);
    border-top:1px solid var(--border);
    background:var(--bg-toolbar);
    transition:background 0.25s, color 0.25s;
  ">
    <a href="https://github.com/hlzx-cpu/VEX-rankings" target="_blank" rel="noopener noreferrer"
       style="display:inline-flex; align-items:center; gap:6px; color:var(--text-dim); text-decoration:none;"
       onmouseover="this.style.color='var(--text-link)'" onmouseout="this.style.color='var(--text-dim)'">
      <svg height="18" width="18" viewBox="0 0 16 16" fill="currentColor" aria-hidden="true">
        <path d="M8 0C3.58 0 0 3.58 0 8c0 3.54 2.29 6.53 5.47 7.59.4.07.55-.17.55-.38
        0-.19-.01-.82-.01-1.49-2.01.37-2.53-.49-2.69-.94-.09-.23-.48-.94-.82-1.13-.28-.15
        -.68-.52-.01-.53.63-.01 1.08.58 1.23.82.72 1.21 1.87.87 2.33.66.07-.52.28-.87
        .51-1.07-1.78-.2-3.64-.89-3.64-3.95 0-.87.31-1.59.82-2.15-.08-.2-.36-1.02.08-2.12
        0 0 .67-.21 2.2.82a7.65 7.65 0 0 1 2-.27c.68 0 1.36.09 2 .27 1.53-1.04 2.2-.82
        2.2-.82.44 1.1.16 1.92.08 2.12.51.56.82 1.27.82 2.15 0 3.07-1.87 3.75-3.65 3.95
        .29.25.54.73.54 1.48 0 1.07-.01 1.93-.01 2.2 0 .21.15.46.55.38A8.01 8.01 0 0 0
        16 8c0-4.42-3.58-8-8-8z"/>
      </svg>
      <span>hlzx-cpu/VEX-rankings</span>
    </a>
  </footer>
</body>
</html>
`
