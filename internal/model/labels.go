package model

// Age brackets.
const (
	AgeChild   = "Criança"
	AgeTeen    = "Adolescente"
	AgeAdult   = "Adulto"
	AgeElderly = "Idoso"
)

// Shifts of the day.
const (
	ShiftNightEarly = "Madrugada"
	ShiftDay        = "Dia"
	ShiftNight      = "Noite"
)

// Weekday names as written in reports.
const (
	Monday    = "Segunda-feira"
	Tuesday   = "Terça-feira"
	Wednesday = "Quarta-feira"
	Thursday  = "Quinta-feira"
	Friday    = "Sexta-feira"
	Saturday  = "Sábado"
	Sunday    = "Domingo"
)

// WeekdayOrder is the canonical chart order, Monday first.
var WeekdayOrder = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ShiftOrder is the canonical chart order of shifts.
var ShiftOrder = []string{ShiftNightEarly, ShiftDay, ShiftNight}

// AgeBracketOrder lists brackets from youngest to oldest.
var AgeBracketOrder = []string{AgeChild, AgeTeen, AgeAdult, AgeElderly}

// WeekendDays are the weekday names flagged as weekend.
var WeekendDays = []string{Saturday, Sunday}
