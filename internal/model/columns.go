package model

// Canonical column headers of the E-Saúde attendance export, after header
// trimming and correction.
const (
	ColAttendedAt    = "Data do Atendimento"
	ColBirthDate     = "Data de Nascimento"
	ColAdmittedAt    = "Data do Internamento"
	ColMunicipality  = "Município"
	ColFacilityType  = "Tipo de Unidade"
	ColCIDCode       = "Código do CID"
	ColReferred      = "Encaminhado para Especialista"
	ColExamRequested = "Solicitação de Exames"
	ColHospitalized  = "Desencadeou Internamento"

	// Derived during cleaning.
	ColAge        = "Idade"
	ColAgeBracket = "Classificação Etária"
	ColWeekday    = "Dia da Semana"
	ColShift      = "Turno do Atendimento"
	ColWeekend    = "Fim de Semana"
)

// HeaderCorrections maps known misspelled source headers to canonical names.
var HeaderCorrections = map[string]string{
	"Municício": ColMunicipality,
}

// DateColumns lists the columns parsed as day-first date/times.
var DateColumns = []string{ColAttendedAt, ColBirthDate, ColAdmittedAt}

// FlagColumn describes a two-valued Sim/Nao column that is encoded to 0/1.
type FlagColumn struct {
	Column     string // frame column, e.g. "Desencadeou Internamento"
	Name       string // short identifier used in logs, e.g. "hospitalized"
	Title      string // chart title
	Label      string // console label of the flag-set count
	TrueLabel  string // chart label for the flag-set bar
	FalseLabel string
}

// AllFlagColumns lists the binary flag columns in report order.
var AllFlagColumns = []FlagColumn{
	{
		Column: ColReferred, Name: "referred",
		Title:     "Proporção de Atendimentos Encaminhados para Especialistas",
		Label:     "Atendimentos encaminhados para especialistas",
		TrueLabel: "Encaminhados para Especialista", FalseLabel: "Não Encaminhados",
	},
	{
		Column: ColExamRequested, Name: "exam_requested",
		Title:     "Proporção de Atendimentos com Solicitação de Exames",
		Label:     "Atendimentos com solicitação de exames",
		TrueLabel: "Com Solicitação de Exames", FalseLabel: "Sem Solicitação",
	},
	{
		Column: ColHospitalized, Name: "hospitalized",
		Title:     "Proporção de Atendimentos que Desencadeiam Internação",
		Label:     "Atendimentos que desencadearam internação",
		TrueLabel: "Sim", FalseLabel: "Não",
	},
}

// FlagColumnByName returns the FlagColumn for the given short name, or ok=false.
func FlagColumnByName(name string) (FlagColumn, bool) {
	for _, fc := range AllFlagColumns {
		if fc.Name == name {
			return fc, true
		}
	}
	return FlagColumn{}, false
}

// DefaultDropColumns are low-value columns removed by the pruner.
var DefaultDropColumns = []string{
	"Código do Tipo de Unidade",
	"Código da Unidade",
	"Código do Procedimento",
	"Descrição do Procedimento",
	"Código do CBO",
	"Descrição do CBO",
	"Descrição do CID",
	"Qtde Prescrita Farmácia Curitibana",
	"Qtde Dispensada Farmácia Curitibana",
	"Qtde de Medicamento Não Padronizado",
	"Área de Atuação",
}

// ExpectedColumns are the source columns the cleaning and reporting stages
// read. Their absence is tolerated but reported.
var ExpectedColumns = []string{
	ColAttendedAt,
	ColBirthDate,
	ColAdmittedAt,
	ColMunicipality,
	ColFacilityType,
	ColCIDCode,
	ColReferred,
	ColExamRequested,
	ColHospitalized,
}
