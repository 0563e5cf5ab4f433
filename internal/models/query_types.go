// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeNamesByCategory QueryType = "names_by_category"
	QueryTypeProductCount    QueryType = "product_count"
	QueryTypeProductList     QueryType = "product_list"
	QueryTypeFindByName      QueryType = "find_by_name"
)
