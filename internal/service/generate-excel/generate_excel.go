package generate_excel

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"registro-os/internal/service/relatorio"
	"registro-os/internal/storage"
)

const (
	SheetResumo       = "Resumo"
	SheetApontamentos = "Apontamentos"
	SheetTestes       = "Testes"
	SheetSetores      = "Setores"
)

const dataHora = "02/01/2006 15:04"

type RelatorioProvider interface {
	RelatorioCompleto(ctx context.Context, numero string) (*relatorio.RelatorioCompleto, error)
}

type GenerateExcelService struct {
	relatorios RelatorioProvider
}

func NewGenerateService(relatorios RelatorioProvider) *GenerateExcelService {
	return &GenerateExcelService{relatorios: relatorios}
}

// GenerateExcel devolve o relatório completo da OS como planilha XLSX.
// Erros do relatório (OS inexistente etc.) são repassados sem embrulho para preservar o tipo.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, numero string) ([]byte, error) {
	rel, err := g.relatorios.RelatorioCompleto(ctx, numero)
	if err != nil {
		return nil, err
	}

	return BuildWorkbook(rel)
}

func BuildWorkbook(rel *relatorio.RelatorioCompleto) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetResumo); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, sheet := range []string{SheetApontamentos, SheetTestes, SheetSetores} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", sheet, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	w := &writer{f: f, headerStyle: headerStyle}
	w.resumo(rel)
	w.apontamentos(rel.Apontamentos)
	w.testes(rel)
	w.setores(rel.DadosPorSetor)
	if w.err != nil {
		return nil, w.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writer guarda o primeiro erro do excelize para não checar cada célula.
type writer struct {
	f           *excelize.File
	headerStyle int
	err         error
}

func (w *writer) set(sheet string, col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(sheet, cellName(col, row), value)
}

func (w *writer) header(sheet string, headers []string) {
	for i, name := range headers {
		w.set(sheet, i+1, 1, name)
	}
	if w.err != nil {
		return
	}
	if w.err = w.f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), w.headerStyle); w.err != nil {
		return
	}
	w.err = w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if w.err != nil {
		return
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	w.err = w.f.SetColWidth(sheet, "A", lastCol, 18)
}

func (w *writer) resumo(rel *relatorio.RelatorioCompleto) {
	w.header(SheetResumo, []string{"Campo", "Valor"})

	m := rel.Metricas
	r := rel.ResumoGerencial
	linhas := [][2]interface{}{
		{"OS", r.NumeroOS},
		{"Status geral", r.StatusGeral},
		{"Status prazo", r.StatusPrazo},
		{"Status qualidade", r.StatusQualidade},
		{"Horas orçadas", m.HorasOrcadas},
		{"Horas realizadas", m.HorasRealizadas},
		{"Desvio (%)", relatorio.Arredondar(m.PercentualDesvio)},
		{"Total de testes", m.TotalTestes},
		{"Testes aprovados", m.TestesAprovados},
		{"Testes reprovados", m.TestesReprovados},
		{"Testes pendentes", m.TestesPendentes},
		{"Aprovação (%)", relatorio.Arredondar(m.PercentualAprovacao)},
		{"Pendências abertas", m.PendenciasAbertas},
		{"Setor gargalo", r.SetorGargalo},
		{"Horas no gargalo", r.HorasGargalo},
		{"Alertas", strings.Join(r.Alertas, "; ")},
		{"Gerado em", rel.GeradoEm.Format(dataHora)},
	}
	if rel.OS != nil {
		linhas = append(linhas,
			[2]interface{}{"Cliente", rel.OS.Cliente},
			[2]interface{}{"Equipamento", rel.OS.Equipamento},
		)
	}

	for i, l := range linhas {
		w.set(SheetResumo, 1, i+2, l[0])
		w.set(SheetResumo, 2, i+2, l[1])
	}
}

func (w *writer) apontamentos(apontamentos []storage.Apontamento) {
	w.header(SheetApontamentos, []string{"ID", "Técnico", "Setor", "Início", "Fim", "Horas", "Status", "Retrabalho"})

	for i, a := range apontamentos {
		row := i + 2
		fim := ""
		if a.DataHoraFim != nil {
			fim = a.DataHoraFim.Format(dataHora)
		}
		retrabalho := "NÃO"
		if a.FoiRetrabalho {
			retrabalho = "SIM"
		}

		w.set(SheetApontamentos, 1, row, a.ID)
		w.set(SheetApontamentos, 2, row, a.Tecnico)
		w.set(SheetApontamentos, 3, row, relatorio.NomeSetor(a))
		w.set(SheetApontamentos, 4, row, a.DataHoraInicio.Format(dataHora))
		w.set(SheetApontamentos, 5, row, fim)
		w.set(SheetApontamentos, 6, row, relatorio.HorasApontamento(a))
		w.set(SheetApontamentos, 7, row, a.Status)
		w.set(SheetApontamentos, 8, row, retrabalho)
	}
}

func (w *writer) testes(rel *relatorio.RelatorioCompleto) {
	w.header(SheetTestes, []string{"Apontamento", "Teste", "Classificação"})

	for i, d := range relatorio.Desfechos(rel.ResultadosTeste) {
		row := i + 2
		w.set(SheetTestes, 1, row, d.IDApontamento)
		w.set(SheetTestes, 2, row, d.Nome)
		w.set(SheetTestes, 3, row, d.Classe)
	}
}

func (w *writer) setores(setores map[string]relatorio.DadosSetor) {
	w.header(SheetSetores, []string{"Setor", "Horas", "Apontamentos", "Testes", "Técnicos"})

	nomes := make([]string, 0, len(setores))
	for nome := range setores {
		nomes = append(nomes, nome)
	}
	sort.Strings(nomes)

	for i, nome := range nomes {
		row := i + 2
		s := setores[nome]
		w.set(SheetSetores, 1, row, nome)
		w.set(SheetSetores, 2, row, s.HorasTotal)
		w.set(SheetSetores, 3, row, s.TotalApontamentos)
		w.set(SheetSetores, 4, row, s.TotalTestes)
		w.set(SheetSetores, 5, row, strings.Join(s.Usuarios, ", "))
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
