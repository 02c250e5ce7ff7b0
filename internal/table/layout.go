package table

import (
	"fmt"
	"html/template"
	"io"

	"github.com/plandes/rend/internal/config"
)

// Column is the per-column metadata of a rendered table
type Column struct {
	Name    string
	Tooltip string
}

// Layout describes a single rendered table page: what data to show, how to
// title it, and the styling toggles for the page.
type Layout struct {
	Title       string
	Description string
	Source      Source

	PageSize         int
	CellWrap         bool
	ColumnDeletable  bool
	ColumnSort       bool
	ColumnFilterable bool
	ColumnWidthPx    int
	RowHeightPx      int
	DataFontSize     int

	// ColumnTooltips overrides the header tooltips, keyed by column name
	ColumnTooltips map[string]string
}

// NewLayout creates a layout for a source with the configured page styling
func NewLayout(source Source, settings *config.TableSettings) *Layout {
	return &Layout{
		Title:            source.Name(),
		Source:           source,
		PageSize:         settings.PageSize,
		CellWrap:         settings.CellWrap,
		ColumnDeletable:  settings.ColumnDeletable,
		ColumnSort:       settings.ColumnSort,
		ColumnFilterable: settings.ColumnFilterable,
		ColumnWidthPx:    settings.ColumnWidthPx,
		RowHeightPx:      settings.RowHeightPx,
		DataFontSize:     settings.DataFontSize,
	}
}

type pageData struct {
	Title            string
	Description      string
	Columns          []Column
	Records          [][]string
	PageSize         int
	CellWrap         bool
	ColumnDeletable  bool
	ColumnSort       bool
	ColumnFilterable bool
	ColumnWidthPx    int
	RowHeightPx      int
	DataFontSize     int
}

// Render writes the table page HTML
func (l *Layout) Render(w io.Writer) error {
	rows, err := l.Source.Rows()
	if err != nil {
		return err
	}

	columns := make([]Column, len(rows.Columns))
	for i, name := range rows.Columns {
		tooltip := name
		if t, ok := l.ColumnTooltips[name]; ok && t != "" {
			tooltip = t
		}
		columns[i] = Column{Name: name, Tooltip: tooltip}
	}

	// pad ragged records so the template emits a cell per column
	records := make([][]string, len(rows.Records))
	for i, rec := range rows.Records {
		if len(rec) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, rec)
			rec = padded
		}
		records[i] = rec
	}

	data := pageData{
		Title:            l.Title,
		Description:      l.Description,
		Columns:          columns,
		Records:          records,
		PageSize:         l.PageSize,
		CellWrap:         l.CellWrap,
		ColumnDeletable:  l.ColumnDeletable,
		ColumnSort:       l.ColumnSort,
		ColumnFilterable: l.ColumnFilterable,
		ColumnWidthPx:    l.ColumnWidthPx,
		RowHeightPx:      l.RowHeightPx,
		DataFontSize:     l.DataFontSize,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render table page: %w", err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; padding: 5px; margin: 0; }
#title { font-size: x-large; height: 50px; max-height: 50px; padding-bottom: 5px; }
#filter { margin-bottom: 5px; }
#tablewrap { overflow-y: scroll; border: 1px solid grey; max-height: calc(100vh - 90px); }
table { width: 100%; border-collapse: collapse; }
tr { height: {{.RowHeightPx}}px; }
th {
  background-color: rgb(180, 180, 180); color: black; font-weight: bold;
  padding: 5px; position: sticky; top: 0; border: 1px solid grey;
}
td {
  font-size: {{.DataFontSize}}px; border: 1px solid grey;
  color: black; background-color: white;
  min-width: {{.ColumnWidthPx}}px; max-width: 300px;
{{- if .CellWrap}}
  white-space: normal;
{{- else}}
  overflow: hidden; text-overflow: ellipsis; white-space: nowrap;
{{- end}}
}
tr:nth-child(odd) td { background-color: rgb(230, 230, 230); }
td.num { text-align: right; }
.del { font-weight: normal; cursor: pointer; margin-left: 4px; }
#pager { padding: 5px 0; }
#pager button { margin-right: 4px; }
</style>
</head>
<body onload="pageReady()">
<div id="title"{{if .Description}} title="{{.Description}}"{{end}}>{{.Title}}</div>
{{- if .ColumnFilterable}}
<input id="filter" type="text" placeholder="filter" oninput="applyFilter(this.value)">
{{- end}}
<div id="tablewrap">
<table id="data">
<thead><tr>
{{- range $i, $col := .Columns}}
<th title="{{$col.Tooltip}}"{{if $.ColumnSort}} onclick="sortBy({{$i}})" style="cursor: pointer;"{{end}}>{{$col.Name}}{{if $.ColumnDeletable}}<span class="del" onclick="deleteColumn(event, {{$i}})">&times;</span>{{end}}</th>
{{- end}}
</tr></thead>
<tbody>
{{- range .Records}}
<tr>
{{- range .}}
<td>{{.}}</td>
{{- end}}
</tr>
{{- end}}
</tbody>
</table>
</div>
<div id="pager">
<button onclick="page(-1)">&laquo;</button>
<span id="pageinfo"></span>
<button onclick="page(1)">&raquo;</button>
</div>
<script>
var pageSize = {{.PageSize}};
var current = 0;
var sortCol = -1;
var sortAsc = true;
var filterText = '';

function rows() {
  return Array.prototype.slice.call(
    document.querySelectorAll('#data tbody tr'));
}

function visibleRows() {
  if (filterText === '') { return rows(); }
  var needle = filterText.toLowerCase();
  return rows().filter(function (tr) {
    return tr.textContent.toLowerCase().indexOf(needle) >= 0;
  });
}

function refresh() {
  var vis = visibleRows();
  var pages = Math.max(1, Math.ceil(vis.length / pageSize));
  if (current >= pages) { current = pages - 1; }
  rows().forEach(function (tr) { tr.style.display = 'none'; });
  vis.slice(current * pageSize, (current + 1) * pageSize).forEach(
    function (tr) { tr.style.display = ''; });
  document.getElementById('pageinfo').textContent =
    (current + 1) + ' / ' + pages;
}

function page(delta) {
  current += delta;
  if (current < 0) { current = 0; }
  refresh();
}

function applyFilter(text) {
  filterText = text;
  current = 0;
  refresh();
}

function sortBy(col) {
  sortAsc = (sortCol === col) ? !sortAsc : true;
  sortCol = col;
  var body = document.querySelector('#data tbody');
  var sorted = rows().sort(function (a, b) {
    var x = a.cells[col] ? a.cells[col].textContent : '';
    var y = b.cells[col] ? b.cells[col].textContent : '';
    var nx = parseFloat(x), ny = parseFloat(y);
    var cmp;
    if (!isNaN(nx) && !isNaN(ny)) { cmp = nx - ny; }
    else { cmp = x.localeCompare(y); }
    return sortAsc ? cmp : -cmp;
  });
  sorted.forEach(function (tr) { body.appendChild(tr); });
  refresh();
}

function deleteColumn(ev, col) {
  ev.stopPropagation();
  document.querySelectorAll('#data tr').forEach(function (tr) {
    if (tr.cells[col]) { tr.deleteCell(col); }
  });
}

function pageReady() {
  refresh();
  // one-shot completion ping back to the owning process
  fetch('/done', {method: 'POST'});
}
</script>
</body>
</html>
`))
