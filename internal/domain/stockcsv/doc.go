// Package stockcsv interpreta los archivos CSV de conteo de stock que exportan los almacenes.
//
// Se reconocen dos formatos:
//
//   - Plain: una línea de encabezado y luego filas "sku,descripcion,stock".
//   - Valuation: reporte "Valuación de Inventarios" con dos líneas de encabezado, campos
//     entrecomillados y la cantidad en la columna 3 ó 4 según el renglón. El motor de reportes
//     repite encabezados, totales y pies de página ("Página 3 de 10", fechas) con el mismo
//     layout que las filas de datos, por eso se filtran por contenido del SKU.
//
// Decode convierte los bytes, Detect clasifica el texto y Parse devuelve la secuencia
// perezosa de registros normalizados.
package stockcsv
