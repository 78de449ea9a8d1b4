package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/creature-poser/internal/palette"
)

const panelFlags = imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

var errorColor = imgui.NewVec4(1, 0.3, 0.3, 1)

func vec4(c palette.Color) imgui.Vec4 {
	return imgui.NewVec4(c.R, c.G, c.B, 1)
}

// Panel draws body in a fixed window covering the given rectangle.
func Panel(title string, x, y, width, height float32, body func()) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))
	if imgui.BeginV(title, nil, panelFlags) {
		body()
	}
	imgui.End()
}

// Available returns the space left in the current window.
func Available() (float32, float32) {
	avail := imgui.ContentRegionAvail()
	return avail.X, avail.Y
}

// SceneImage shows the scene texture at the cursor, flipped for OpenGL, and
// samples the mouse over it.
func SceneImage(texture uint32, width, height float32) Sample {
	origin := imgui.CursorScreenPos()
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texture))
	imgui.ImageV(*texRef,
		imgui.NewVec2(width, height),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0))

	mouse := imgui.MousePos()
	return Sample{
		X:       mouse.X - origin.X,
		Y:       mouse.Y - origin.Y,
		Hovered: imgui.IsItemHovered(),
		Left:    imgui.IsMouseDown(imgui.MouseButtonLeft),
		Pan:     imgui.IsMouseDown(imgui.MouseButtonMiddle) || imgui.IsMouseDown(imgui.MouseButtonRight),
		Wheel:   imgui.CurrentIO().MouseWheel(),
	}
}

// StatusText prints the status lines and the last error, if any.
func StatusText(lines []string, lastErr string) {
	for _, line := range lines {
		imgui.Text(line)
	}
	if lastErr != "" {
		imgui.TextColored(errorColor, lastErr)
	}
	imgui.Separator()
}

// PresetButtons draws one button per preset and returns the clicked one.
func PresetButtons(names []string) (string, bool) {
	clicked, ok := "", false
	for i, name := range names {
		if i%4 != 0 {
			imgui.SameLine()
		}
		if imgui.Button(name) {
			clicked, ok = name, true
		}
	}
	return clicked, ok
}

// NodeTable draws the enumeration and returns the index of a clicked row.
func NodeTable(rows []Row) (int, bool) {
	clicked, ok := 0, false
	if imgui.BeginChildStrV("NodeTable", imgui.NewVec2(0, 0), imgui.ChildFlagsBorders, 0) {
		if imgui.BeginTable("nodes", 4) {
			imgui.TableSetupColumnV("#", imgui.TableColumnFlagsWidthFixed, 28, 0)
			imgui.TableSetupColumnV("Name", imgui.TableColumnFlagsWidthStretch, 0, 0)
			imgui.TableSetupColumnV("u / v / w", imgui.TableColumnFlagsWidthFixed, 150, 0)
			imgui.TableSetupColumnV("Range", imgui.TableColumnFlagsWidthFixed, 100, 0)
			imgui.TableHeadersRow()

			for _, row := range rows {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				label := fmt.Sprintf("%d##row%d", row.Index, row.Index)
				if imgui.SelectableBoolV(label, row.Selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
					clicked, ok = row.Index, true
				}

				imgui.TableNextColumn()
				if row.Current {
					imgui.TextColored(vec4(palette.AxisColor(row.Axis)), row.Name)
				} else {
					imgui.Text(row.Name)
				}
				imgui.TableNextColumn()
				imgui.Text(row.AngleText())
				imgui.TableNextColumn()
				imgui.TextDisabled(row.RangeText())
			}
			imgui.EndTable()
		}
	}
	imgui.EndChild()
	return clicked, ok
}
