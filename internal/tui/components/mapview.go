package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/rendis/redbook/internal/tui/styles"
)

// Region is a named polygon drawn on the map.
type Region struct {
	Name     string
	Geometry orb.MultiPolygon
	Bound    orb.Bound
}

// MapView renders province outlines with Braille characters and fills the
// regions marked as filled.
type MapView struct {
	width   int
	height  int
	regions []Region
	filled  map[string]bool

	cursorLat, cursorLng float64
	// Viewport bounds
	minLat, maxLat float64
	minLng, maxLng float64
	// Base bounds (for zoom reference)
	basMinLat, basMaxLat float64
	basMinLng, basMaxLng float64
	zoomLevel            float64 // 1.0 = no zoom, >1 = zoomed in
	panLat, panLng       float64 // pan offset in degrees
}

const cursorSteps = 40.0

func NewMapView(width, height int) MapView {
	return MapView{
		width:     width,
		height:    height,
		zoomLevel: 1.0,
	}
}

func (m *MapView) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetRegions replaces the drawn regions, fits the viewport to them and puts
// the cursor in the middle.
func (m *MapView) SetRegions(regions []Region) {
	m.regions = regions
	m.fitBounds()
	m.cursorLat = (m.basMinLat + m.basMaxLat) / 2
	m.cursorLng = (m.basMinLng + m.basMaxLng) / 2
}

// SetFilled marks the regions to fill. nil clears the fill.
func (m *MapView) SetFilled(filled map[string]bool) {
	m.filled = filled
}

func (m MapView) Cursor() (lat, lng float64) {
	return m.cursorLat, m.cursorLng
}

func (m *MapView) SetCursor(lat, lng float64) {
	m.cursorLat = clamp(lat, m.basMinLat, m.basMaxLat)
	m.cursorLng = clamp(lng, m.basMinLng, m.basMaxLng)
	m.follow()
}

// MoveCursor moves the cursor by whole steps; a step is a fraction of the
// visible range so movement stays usable at every zoom level.
func (m *MapView) MoveCursor(dLat, dLng int) {
	stepLat := (m.maxLat - m.minLat) / cursorSteps
	stepLng := (m.maxLng - m.minLng) / cursorSteps
	m.SetCursor(m.cursorLat+float64(dLat)*stepLat, m.cursorLng+float64(dLng)*stepLng)
}

func (m *MapView) ZoomIn() {
	m.zoomLevel *= 1.5
	if m.zoomLevel > 20 {
		m.zoomLevel = 20
	}
	m.centerOnCursor()
}

func (m *MapView) ZoomOut() {
	m.zoomLevel /= 1.5
	if m.zoomLevel < 1 {
		m.zoomLevel = 1
	}
	m.centerOnCursor()
}

func (m *MapView) ZoomReset() {
	m.zoomLevel = 1.0
	m.panLat = 0
	m.panLng = 0
	m.applyZoom()
}

func (m *MapView) centerOnCursor() {
	if m.zoomLevel == 1 {
		m.panLat, m.panLng = 0, 0
	} else {
		m.panLat = m.cursorLat - (m.basMinLat+m.basMaxLat)/2
		m.panLng = m.cursorLng - (m.basMinLng+m.basMaxLng)/2
	}
	m.applyZoom()
}

// follow pans the viewport when the cursor leaves it.
func (m *MapView) follow() {
	if m.cursorLat >= m.minLat && m.cursorLat <= m.maxLat &&
		m.cursorLng >= m.minLng && m.cursorLng <= m.maxLng {
		return
	}
	m.centerOnCursor()
}

func (m *MapView) applyZoom() {
	centerLat := (m.basMinLat+m.basMaxLat)/2 + m.panLat
	centerLng := (m.basMinLng+m.basMaxLng)/2 + m.panLng
	halfLat := (m.basMaxLat - m.basMinLat) / 2 / m.zoomLevel
	halfLng := (m.basMaxLng - m.basMinLng) / 2 / m.zoomLevel
	m.minLat = centerLat - halfLat
	m.maxLat = centerLat + halfLat
	m.minLng = centerLng - halfLng
	m.maxLng = centerLng + halfLng
}

func (m *MapView) fitBounds() {
	if len(m.regions) == 0 {
		return
	}
	b := m.regions[0].Bound
	for _, r := range m.regions[1:] {
		b = b.Union(r.Bound)
	}
	m.basMinLat, m.basMaxLat = b.Min.Lat(), b.Max.Lat()
	m.basMinLng, m.basMaxLng = b.Min.Lon(), b.Max.Lon()

	// Add padding
	latPad := (m.basMaxLat - m.basMinLat) * 0.05
	lngPad := (m.basMaxLng - m.basMinLng) * 0.05
	if latPad == 0 {
		latPad = 0.01
	}
	if lngPad == 0 {
		lngPad = 0.01
	}
	m.basMinLat -= latPad
	m.basMaxLat += latPad
	m.basMinLng -= lngPad
	m.basMaxLng += lngPad
	m.zoomLevel = 1
	m.panLat, m.panLng = 0, 0
	m.applyZoom()
}

// projection maps between geographic coordinates and the dot grid, keeping
// the geographic aspect ratio.
type projection struct {
	m                      *MapView
	dotW, dotH             int
	effectiveW, effectiveH int
	offsetX, offsetY       int
}

func (m *MapView) projection() (projection, bool) {
	p := projection{m: m, dotW: m.width * 2, dotH: m.height * 4}
	latRange := m.maxLat - m.minLat
	lngRange := m.maxLng - m.minLng
	if m.width <= 0 || m.height <= 0 || latRange == 0 || lngRange == 0 {
		return p, false
	}

	// A terminal char is ~2x taller than wide; braille dots are 2 wide x 4
	// tall per char, so each dot is roughly square on screen.
	avgLat := (m.minLat + m.maxLat) / 2
	cosLat := math.Cos(avgLat * math.Pi / 180)
	geoAspect := (lngRange * cosLat) / latRange
	dotAspect := float64(p.dotW) / float64(p.dotH)

	p.effectiveW, p.effectiveH = p.dotW, p.dotH
	if geoAspect < dotAspect {
		p.effectiveW = int(float64(p.dotH) * geoAspect)
		if p.effectiveW < 4 {
			p.effectiveW = 4
		}
		p.offsetX = (p.dotW - p.effectiveW) / 2
	} else {
		p.effectiveH = int(float64(p.dotW) / geoAspect)
		if p.effectiveH < 4 {
			p.effectiveH = 4
		}
		p.offsetY = (p.dotH - p.effectiveH) / 2
	}
	return p, true
}

func (p projection) toDot(lat, lng float64) (int, int) {
	m := p.m
	x := p.offsetX + int((lng-m.minLng)/(m.maxLng-m.minLng)*float64(p.effectiveW-1))
	y := p.offsetY + int((m.maxLat-lat)/(m.maxLat-m.minLat)*float64(p.effectiveH-1))
	return x, y
}

func (p projection) fromDot(x, y float64) (lat, lng float64) {
	m := p.m
	lng = m.minLng + (x-float64(p.offsetX))/float64(p.effectiveW-1)*(m.maxLng-m.minLng)
	lat = m.maxLat - (y-float64(p.offsetY))/float64(p.effectiveH-1)*(m.maxLat-m.minLat)
	return lat, lng
}

// CellToLatLng converts a character cell of the rendered map to coordinates.
func (m MapView) CellToLatLng(col, row int) (lat, lng float64, ok bool) {
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return 0, 0, false
	}
	p, valid := m.projection()
	if !valid {
		return 0, 0, false
	}
	lat, lng = p.fromDot(float64(col*2)+0.5, float64(row*4)+1.5)
	return lat, lng, true
}

func (m MapView) regionAt(lat, lng float64, only map[string]bool) bool {
	point := orb.Point{lng, lat}
	for _, r := range m.regions {
		if !only[r.Name] || !r.Bound.Contains(point) {
			continue
		}
		if planar.MultiPolygonContains(r.Geometry, point) {
			return true
		}
	}
	return false
}

// Braille character encoding:
// Each braille char is a 2x4 dot grid.
// Dot positions:  0 3
//
//	1 4
//	2 5
//	6 7
//
// Unicode: 0x2800 + sum of raised dot bits
var brailleDots = [8]rune{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}

var dotPositions = [8][2]int{
	{0, 0}, {1, 0}, {2, 0}, {0, 1},
	{1, 1}, {2, 1}, {3, 0}, {3, 1},
}

func (m MapView) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	cols, rows := m.width, m.height
	p, ok := m.projection()
	if !ok {
		return strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", cols)+"\n", rows), "\n")
	}
	dotW, dotH := p.dotW, p.dotH

	borderGrid := make([][]bool, dotH)
	fillGrid := make([][]bool, dotH)
	for i := range borderGrid {
		borderGrid[i] = make([]bool, dotW)
		fillGrid[i] = make([]bool, dotW)
	}

	// Each ring is drawn on its own so rings never join up.
	for _, r := range m.regions {
		for _, poly := range r.Geometry {
			for _, ring := range poly {
				for i := 0; i+1 < len(ring); i++ {
					x0, y0 := p.toDot(ring[i].Lat(), ring[i].Lon())
					x1, y1 := p.toDot(ring[i+1].Lat(), ring[i+1].Lon())
					drawLine(borderGrid, x0, y0, x1, y1, dotW, dotH)
				}
			}
		}
	}

	// Checkerboard fill keeps filled regions readable next to their borders.
	if len(m.filled) > 0 {
		for y := 0; y < dotH; y++ {
			for x := y % 2; x < dotW; x += 2 {
				lat, lng := p.fromDot(float64(x), float64(y))
				if m.regionAt(lat, lng, m.filled) {
					fillGrid[y][x] = true
				}
			}
		}
	}

	cx, cy := p.toDot(m.cursorLat, m.cursorLng)
	cursorCol, cursorRow := cx/2, cy/4

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	fillStyle := lipgloss.NewStyle().Foreground(styles.Highlight)
	cursorStyle := lipgloss.NewStyle().Foreground(styles.Warning).Bold(true)

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if row == cursorRow && col == cursorCol {
				sb.WriteString(cursorStyle.Render("╋"))
				continue
			}

			var borderVal rune = 0x2800
			var fillVal rune = 0x2800
			for dot := 0; dot < 8; dot++ {
				dy := row*4 + dotPositions[dot][0]
				dx := col*2 + dotPositions[dot][1]
				if dy < dotH && dx < dotW {
					if borderGrid[dy][dx] {
						borderVal |= brailleDots[dot]
					}
					if fillGrid[dy][dx] {
						fillVal |= brailleDots[dot]
					}
				}
			}

			switch {
			case fillVal != 0x2800:
				sb.WriteString(fillStyle.Render(string(fillVal | borderVal)))
			case borderVal != 0x2800:
				sb.WriteString(borderStyle.Render(string(borderVal)))
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(grid [][]bool, x0, y0, x1, y1, maxW, maxH int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < maxW && y0 >= 0 && y0 < maxH {
			grid[y0][x0] = true
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
