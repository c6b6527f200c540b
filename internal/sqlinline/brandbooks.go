package sqlinline

const QInsertBrandbook = `--sql 3f6a2c1e-9b0d-4c57-8e2a-71d4b5f0c9a3
insert into brandbooks (
  id,
  name,
  keywords,
  source_logo_url,
  slogan,
  colors,
  fonts,
  icons,
  logo_variants,
  created_at
) values (
  $1::uuid,
  $2::text,
  $3::text,
  $4::text,
  $5::text,
  $6::jsonb,
  $7::jsonb,
  $8::jsonb,
  $9::jsonb,
  now()
)
returning created_at;
`

const QSelectBrandbookByID = `--sql 8c1d7e4b-2f3a-4b6c-9d0e-5a7f1b2c3d4e
select id::text, name, slogan, colors, fonts, icons, logo_variants, created_at
from brandbooks
where id = $1::uuid
limit 1;
`
