package web

// dashboardPage is the live dashboard. It polls /api/rankings on a
// fixed interval and redraws the bubble chart and the compare panel
// entirely client side, so the server only ever serves this one page
// plus JSON.
const dashboardPage = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>VURC {{.Years}} 战绩看板</title>
  <script src="https://cdn.plot.ly/plotly-2.32.0.min.js" charset="utf-8"></script>
  <style>
    body {
      font-family: 'Segoe UI', Arial, sans-serif;
      background-color: #f5f7fa;
      min-height: 100vh;
      padding: 16px;
      margin: 0;
    }
    .header {
      display: flex;
      align-items: center;
      justify-content: space-between;
      margin-bottom: 12px;
    }
    .header h2 { margin: 0; color: #1a1a2e; font-size: 22px; }
    #last-update-label { color: #888; font-size: 13px; }
    #status-bar { margin-bottom: 8px; color: #c0392b; font-size: 13px; min-height: 16px; }
    .content { display: flex; gap: 16px; align-items: flex-start; }
    #bubble-chart { flex: 1; min-width: 0; border-radius: 8px; overflow: hidden; }
    .compare-panel {
      width: 320px;
      flex-shrink: 0;
      background-color: white;
      border-radius: 8px;
      padding: 16px;
      box-shadow: 0 1px 4px rgba(0,0,0,0.08);
    }
    .compare-panel h4 { margin: 0 0 8px 0; color: #1a1a2e; font-size: 15px; }
    .compare-panel p.hint { color: #888; font-size: 12px; margin: 0 0 10px 0; }
    #compare-input {
      width: 100%;
      box-sizing: border-box;
      font-size: 13px;
      padding: 6px 8px;
      border: 1px solid #ccc;
      border-radius: 4px;
      margin-bottom: 8px;
    }
    #compare-chips { margin-bottom: 12px; }
    .chip {
      display: inline-block;
      background: #eef2f7;
      border: 1px solid #d6dde6;
      border-radius: 12px;
      padding: 2px 8px;
      margin: 0 4px 4px 0;
      font-size: 12px;
      color: #1a1a2e;
    }
    .chip span { margin-left: 6px; cursor: pointer; color: #888; }
    table.compare { width: 100%; border-collapse: collapse; margin-top: 4px; }
    table.compare th {
      padding: 4px 6px;
      font-size: 12px;
      font-weight: bold;
      color: #555;
      border-bottom: 2px solid #ccc;
      text-align: left;
    }
    table.compare td { padding: 4px 6px; font-size: 12px; border-bottom: 1px solid #eee; }
    table.compare td.team { font-weight: bold; color: #1a1a2e; }
    table.compare td.rank { color: #888; }
    p.placeholder { color: #aaa; font-size: 12px; text-align: center; }
    p.missing { color: #c0392b; font-size: 12px; }
  </style>
</head>
<body>
  <div class="header">
    <h2>VURC {{.Years}} 实时战绩看板</h2>
    <div id="last-update-label"></div>
  </div>
  <div id="status-bar"></div>
  <div class="content">
    <div id="bubble-chart"></div>
    <div class="compare-panel">
      <h4>&#128269; 队伍对比</h4>
      <p class="hint">输入队伍编号（如 SJTU1），选择后自动高亮</p>
      <input id="compare-input" list="team-options" placeholder="输入队伍编号..." autocomplete="off">
      <datalist id="team-options"></datalist>
      <div id="compare-chips"></div>
      <div id="compare-table"></div>
    </div>
  </div>

  <script>
  (function () {
    'use strict';

    var POLL_MS = {{.PollMillis}};
    var YEARS = '{{.Years}}';

    var rows = [];
    var selected = [];

    function pad(n) { return (n < 10 ? '0' : '') + n; }

    function fmtTime(d) {
      return pad(d.getHours()) + ':' + pad(d.getMinutes()) + ':' + pad(d.getSeconds());
    }

    function escapeHTML(s) {
      return String(s).replace(/[&<>"']/g, function (ch) {
        return { '&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;' }[ch];
      });
    }

    function isSelected(name) { return selected.indexOf(name) !== -1; }

    function refresh() {
      fetch('/api/rankings').then(function (resp) {
        if (!resp.ok) { throw new Error('HTTP ' + resp.status); }
        return resp.json();
      }).then(function (data) {
        rows = data.rows || [];
        document.getElementById('last-update-label').textContent = '最近更新: ' + fmtTime(new Date());
        document.getElementById('status-bar').textContent = data.status || '';
        renderOptions();
        renderChart();
        renderCompare();
      }).catch(function (err) {
        document.getElementById('status-bar').textContent = '⚠️  读取数据失败: ' + err.message;
      });
    }

    function renderOptions() {
      var list = document.getElementById('team-options');
      list.innerHTML = '';
      rows.map(function (r) { return r.team_name; }).sort().forEach(function (name) {
        var opt = document.createElement('option');
        opt.value = name;
        list.appendChild(opt);
      });
    }

    function renderChart() {
      var hasSkills = rows.filter(function (r) { return r.programming_skills > 0; });
      var noSkills = rows.filter(function (r) { return r.programming_skills === 0; });
      var anySelected = selected.length > 0;
      var traces = [];

      if (hasSkills.length > 0) {
        traces.push({
          type: 'scatter',
          x: hasSkills.map(function (r) { return r.strength_of_schedule; }),
          y: hasSkills.map(function (r) { return r.elo; }),
          mode: 'markers+text',
          text: hasSkills.map(function (r) { return r.team_name; }),
          textposition: 'top center',
          textfont: { size: 9, color: '#333333' },
          marker: {
            size: hasSkills.map(function (r) { return Math.sqrt(r.programming_skills) * 4; }),
            color: hasSkills.map(function (r) { return r.driver_skills; }),
            colorscale: 'Plasma',
            colorbar: {
              title: { text: 'driver_skills', side: 'top' },
              tickvals: [0, 20, 40, 60, 80, 100, 120, 140],
              x: 1.01, xanchor: 'left', yanchor: 'middle', y: 0.5,
              len: 0.75, thickness: 16
            },
            line: {
              width: anySelected
                ? hasSkills.map(function (r) { return isSelected(r.team_name) ? 3.0 : 0.5; })
                : 0.5,
              color: anySelected
                ? hasSkills.map(function (r) { return isSelected(r.team_name) ? '#FF0000' : 'rgba(0,0,0,0.25)'; })
                : 'rgba(0,0,0,0.25)'
            },
            showscale: true
          },
          hovertemplate: '<b>%{text}</b><br>SoS: %{x:.4f}<br>Elo: %{y:.1f}<br>' +
            'Driver: %{customdata[0]}<br>Programming: %{customdata[1]}<extra></extra>',
          customdata: hasSkills.map(function (r) { return [r.driver_skills, r.programming_skills]; }),
          name: '有 Skills 数据'
        });
      }

      if (noSkills.length > 0) {
        traces.push({
          type: 'scatter',
          x: noSkills.map(function (r) { return r.strength_of_schedule; }),
          y: noSkills.map(function (r) { return r.elo; }),
          mode: 'markers+text',
          text: noSkills.map(function (r) { return r.team_name; }),
          textposition: 'top center',
          textfont: { size: 9, color: '#333333' },
          marker: {
            size: 6,
            color: '#BBBBBB',
            symbol: 'circle',
            line: {
              width: anySelected
                ? noSkills.map(function (r) { return isSelected(r.team_name) ? 3.0 : 0.5; })
                : 0.5,
              color: anySelected
                ? noSkills.map(function (r) { return isSelected(r.team_name) ? '#FF0000' : 'rgba(0,0,0,0.1)'; })
                : 'rgba(0,0,0,0.1)'
            }
          },
          hovertemplate: '<b>%{text}</b><br>SoS: %{x:.4f}<br>Elo: %{y:.1f}<br>Skills: 无数据<extra></extra>',
          name: '无 Skills 数据',
          showlegend: false
        });
      }

      var elos = rows.map(function (r) { return r.elo; });
      var eloMin = elos.length > 0 ? Math.min.apply(null, elos) : 1400;
      var eloMax = elos.length > 0 ? Math.max.apply(null, elos) : 1600;
      var eloPad = Math.max((eloMax - eloMin) * 0.05, 10);

      var layout = {
        title: {
          text: 'Elo vs Strength of Schedule, Skills Scores ' +
            '(Driver = Color, Programming = Size) ---VURC--- ' + YEARS,
          x: 0, xanchor: 'left', font: { size: 13 }
        },
        paper_bgcolor: 'white',
        plot_bgcolor: '#e8edf4',
        height: 800,
        margin: { l: 60, r: 130, t: 55, b: 55 },
        font: { family: "'Segoe UI', Arial, sans-serif" },
        showlegend: false,
        xaxis: {
          title: { text: 'strength_of_schedule' },
          range: [0.28, 0.82],
          dtick: 0.05,
          showgrid: true, gridcolor: 'white', gridwidth: 1,
          zeroline: false, showline: false,
          tickformat: '.2f'
        },
        yaxis: {
          title: { text: 'elo' },
          range: [eloMin - eloPad, eloMax + eloPad],
          dtick: 50,
          showgrid: true, gridcolor: 'white', gridwidth: 1,
          zeroline: false, showline: false
        }
      };

      Plotly.react('bubble-chart', traces, layout, { responsive: true, displayModeBar: true });
    }

    function renderCompare() {
      var container = document.getElementById('compare-table');

      if (rows.length === 0 || selected.length === 0) {
        container.innerHTML = '<p class="placeholder">请在上方选择要对比的队伍</p>';
        return;
      }

      var sel = rows.filter(function (r) { return isSelected(r.team_name); });
      if (sel.length === 0) {
        container.innerHTML = '<p class="missing">未找到选中的队伍</p>';
        return;
      }

      sel.sort(function (a, b) { return b.elo - a.elo; });

      var ranked = rows.slice().sort(function (a, b) { return b.elo - a.elo; });
      var rankOf = {};
      ranked.forEach(function (r, i) { rankOf[r.team_name] = i + 1; });

      var html = '<table class="compare"><thead><tr>' +
        '<th>队伍</th><th>排名</th><th>Elo</th><th>SoS</th><th>Driver</th><th>Prog</th>' +
        '</tr></thead><tbody>';
      sel.forEach(function (r) {
        html += '<tr>' +
          '<td class="team">' + escapeHTML(r.team_name) + '</td>' +
          '<td class="rank">#' + (rankOf[r.team_name] || '?') + '</td>' +
          '<td>' + r.elo.toFixed(0) + '</td>' +
          '<td>' + r.strength_of_schedule.toFixed(3) + '</td>' +
          '<td>' + r.driver_skills + '</td>' +
          '<td>' + r.programming_skills + '</td>' +
          '</tr>';
      });
      html += '</tbody></table>';
      container.innerHTML = html;
    }

    function renderChips() {
      var box = document.getElementById('compare-chips');
      box.innerHTML = '';
      selected.forEach(function (name) {
        var chip = document.createElement('span');
        chip.className = 'chip';
        chip.textContent = name;

        var remove = document.createElement('span');
        remove.textContent = '×';
        remove.addEventListener('click', function () {
          selected = selected.filter(function (t) { return t !== name; });
          renderChips();
          renderChart();
          renderCompare();
        });

        chip.appendChild(remove);
        box.appendChild(chip);
      });
    }

    function addTeam() {
      var input = document.getElementById('compare-input');
      var value = input.value.trim().toUpperCase();
      if (value === '') { return; }
      if (!isSelected(value)) { selected.push(value); }
      input.value = '';
      renderChips();
      renderChart();
      renderCompare();
    }

    var input = document.getElementById('compare-input');
    input.addEventListener('change', addTeam);
    input.addEventListener('keydown', function (ev) {
      if (ev.key === 'Enter') { addTeam(); }
    });

    refresh();
    setInterval(refresh, POLL_MS);
  })();
  </script>
</body>
</html>
`
