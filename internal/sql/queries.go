package sql

import (
	"embed"
)

// Migrations holds the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_source_file.sql
var RegisterSourceFile string

//go:embed queries/lookup_source_file.sql
var LookupSourceFile string

//go:embed queries/update_source_status.sql
var UpdateSourceStatus string

//go:embed queries/upsert_municipalities.sql
var UpsertMunicipalities string

//go:embed queries/upsert_facility_types.sql
var UpsertFacilityTypes string

//go:embed queries/delete_source_attendances.sql
var DeleteSourceAttendances string

//go:embed queries/transform_stage_to_attendances.sql
var TransformStageToAttendances string

//go:embed queries/delete_stage_run.sql
var DeleteStageRun string

//go:embed queries/deactivate_older_versions.sql
var DeactivateOlderVersions string

//go:embed queries/activate_version.sql
var ActivateVersion string

//go:embed queries/analyze_attendances.sql
var AnalyzeAttendances string
