package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talkdata/config"
)

func testSQLConfig() config.SQLServerConfig {
	return config.SQLServerConfig{
		Server:   "localhost",
		Port:     "1433",
		Database: "analytics",
		UserID:   "svc",
		Password: "secret",
		Encrypt:  true,
	}
}

func TestRewriteTableRefs(t *testing.T) {
	tests := []struct {
		name  string
		query string
		loc   string
		want  string
	}{
		{
			"simple from",
			`SELECT * FROM data`,
			"analytics.ds_1_v2",
			`SELECT * FROM [analytics].[ds_1_v2] AS data`,
		},
		{
			"lowercase from",
			`select "지역" from data where "매출액" > 0`,
			"analytics.ds_1_v2",
			`select "지역" from [analytics].[ds_1_v2] AS data where "매출액" > 0`,
		},
		{
			"join",
			`SELECT * FROM data d JOIN data x ON d.id = x.id`,
			"dbo.t1",
			`SELECT * FROM [dbo].[t1] AS data d JOIN [dbo].[t1] AS data x ON d.id = x.id`,
		},
		{
			"column named data untouched",
			`SELECT data_id FROM data`,
			"dbo.t1",
			`SELECT data_id FROM [dbo].[t1] AS data`,
		},
		{
			"no data table",
			`SELECT * FROM other`,
			"dbo.t1",
			`SELECT * FROM other`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteTableRefs(tt.query, tt.loc))
		})
	}
}

func TestValidateSelect(t *testing.T) {
	valid := []string{
		`SELECT * FROM data`,
		`select "지역", count(*) from data group by "지역"`,
		"  SELECT 1  ",
		`-- leading comment
SELECT * FROM data`,
		`/* block */ SELECT * FROM data`,
		`WITH t AS (SELECT 1 AS x) SELECT x FROM t`,
	}
	for _, q := range valid {
		assert.NoError(t, ValidateSelect(q), q)
	}

	invalid := []string{
		`DELETE FROM data`,
		`INSERT INTO data VALUES (1)`,
		`UPDATE data SET x = 1`,
		`DROP TABLE data`,
		`SELECT * FROM data; DROP TABLE data`,
		`TRUNCATE TABLE data`,
		`MERGE INTO data USING x ON 1=1`,
		`GRANT SELECT ON data TO someone`,
		``,
		`EXPLAIN SELECT 1`,
	}
	for _, q := range invalid {
		assert.Error(t, ValidateSelect(q), q)
	}
}

func TestValidateSelectIgnoresKeywordsInComments(t *testing.T) {
	query := `SELECT * FROM data -- not a DELETE
/* DROP is only mentioned here */`
	assert.NoError(t, ValidateSelect(query))
}

func TestValidateSelectCommentCannotHideMutation(t *testing.T) {
	query := `/* looks harmless */ DELETE FROM data`
	assert.Error(t, ValidateSelect(query))
}

func TestBuildConnectionString(t *testing.T) {
	cfg := testSQLConfig()
	got := buildConnectionString(cfg)

	assert.Contains(t, got, "server=localhost")
	assert.Contains(t, got, "port=1433")
	assert.Contains(t, got, "database=analytics")
	assert.Contains(t, got, "user id=svc")
	assert.Contains(t, got, "encrypt=true")
}

func TestBuildConnectionStringTrustedConnection(t *testing.T) {
	cfg := testSQLConfig()
	cfg.UserID = ""
	cfg.Encrypt = false

	got := buildConnectionString(cfg)

	assert.Contains(t, got, "trusted_connection=true")
	assert.Contains(t, got, "encrypt=false")
	assert.NotContains(t, got, "password")
}
