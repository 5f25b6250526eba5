package lexer

// keywords are matched case-sensitively
var keywords = newSet(
	// control flow
	"if", "then", "else", "end", "switch", "case", "default",
	"for", "do", "while", "break", "continue",
	"try", "catch", "throw",
	// declarations
	"let", "var", "function",
	// operators
	"and", "or", "not", "in", "like",
	// values
	"true", "false", "null", "this", "me",
	// execution context
	"as", "database", "server", "transaction", "user",
	// data access
	"select", "from", "where", "order", "by", "group", "limit",
	"asc", "desc", "distinct",
)

var builtins = newSet(
	// records
	"create", "delete", "duplicate", "record", "records",
	"first", "last", "item", "count", "cnt", "sum", "avg", "min", "max",
	// text
	"text", "number", "upper", "lower", "trim", "length",
	"substr", "replace", "split", "join", "contains",
	"format", "formatNumber", "parseNumber",
	// date
	"today", "now", "date", "time", "datetime",
	"year", "month", "day", "hour", "minute", "second",
	"weekday", "week", "quarter",
	"dateAdd", "dateDiff", "dateFormat",
	"startOfDay", "endOfDay", "startOfWeek", "endOfWeek",
	"startOfMonth", "endOfMonth", "startOfYear", "endOfYear",
	// math
	"abs", "ceil", "floor", "round", "sqrt", "pow",
	"sin", "cos", "tan", "asin", "acos", "atan",
	"log", "exp", "random",
	// arrays
	"array", "unique", "sort", "reverse", "slice",
	"concat", "indexOf", "includes", "filter", "map",
	// ui
	"alert", "confirm", "prompt", "dialog",
	"popupRecord", "openRecord", "closePopup",
	"openPrintLayout", "printRecord",
	// files
	"importFile", "exportFile", "downloadFile",
	"importCSV", "importJSON", "exportCSV", "exportJSON",
	// http and email
	"http", "httpGet", "httpPost", "httpPut", "httpDelete",
	"sendEmail", "email",
	// utility
	"debug", "print", "sleep", "eval",
	"typeof", "isnull", "isempty", "isEmpty",
	"coalesce", "choose",
	"setStyle", "getStyle", "focus", "blur",
	"navigate", "openUrl", "openTable", "openView", "openDatabase",
	// user and database info
	"userId", "userName", "userEmail", "userRoles",
	"hasRole", "isAdmin",
	"databaseId", "databaseName", "tableId", "tableName",
	"fieldId", "fieldName",
	"archive", "unarchive", "isArchived",
	"copyToClipboard", "readFromClipboard",
	"parseJSON", "formatJSON", "json",
	"rgb", "rgba", "hex", "color",
	"location", "geoDistance",
)

// IsKeyword returns true if word is a reserved word of the dialect
func IsKeyword(word string) bool {
	return keywords[word]
}

func newSet(words ...string) map[string]bool {
	result := make(map[string]bool, len(words))
	for _, word := range words {
		result[word] = true
	}
	return result
}
