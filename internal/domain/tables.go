package domain

var Tables = []interface{}{
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	&Category{},
	&Product{},
	&ProductImage{},
}
